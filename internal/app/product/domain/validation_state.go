package domain

// ValidationState tracks which form fields the user has touched and whether
// every error should be shown regardless. One instance lives per form session.
type ValidationState struct {
	touched       map[Field]bool
	showAllErrors bool
}

// NewValidationState creates a clean state: nothing touched, errors hidden.
func NewValidationState() *ValidationState {
	return &ValidationState{
		touched: make(map[Field]bool),
	}
}

// Touch marks a field as touched (blurred at least once).
func (s *ValidationState) Touch(f Field) {
	s.touched[f] = true
}

// Touched reports whether f has been touched.
func (s *ValidationState) Touched(f Field) bool {
	return s.touched[f]
}

// RevealAll marks every field touched and switches on the error summary.
// Called after a rejected submit.
func (s *ValidationState) RevealAll() {
	for _, f := range Fields {
		s.touched[f] = true
	}
	s.showAllErrors = true
}

// ShowAllErrors reports whether the summary is visible.
func (s *ValidationState) ShowAllErrors() bool {
	return s.showAllErrors
}

// ShouldShow reports whether the inline error slot of f is visible.
func (s *ValidationState) ShouldShow(f Field) bool {
	return s.showAllErrors || s.touched[f]
}

// Clone returns an independent copy.
func (s *ValidationState) Clone() *ValidationState {
	c := NewValidationState()
	for f, v := range s.touched {
		c.touched[f] = v
	}
	c.showAllErrors = s.showAllErrors
	return c
}
