package domain

import "fmt"

// ViewMode is the state of the catalog screen.
type ViewMode string

const (
	ModeList   ViewMode = "list"
	ModeCreate ViewMode = "create"
	ModeEdit   ViewMode = "edit"
	ModeDetail ViewMode = "detail"
)

// ParseViewMode rejects anything outside the four known modes.
func ParseViewMode(raw string) (ViewMode, error) {
	m := ViewMode(raw)
	switch m {
	case ModeList, ModeCreate, ModeEdit, ModeDetail:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, raw)
	}
}

// IsForm reports whether the mode shows the product form.
func (m ViewMode) IsForm() bool {
	return m == ModeCreate || m == ModeEdit
}

// HasRecord reports whether a current record accompanies the mode.
func (m ViewMode) HasRecord() bool {
	switch m {
	case ModeEdit, ModeDetail:
		return true
	case ModeList, ModeCreate:
		return false
	default:
		return false
	}
}

func (m ViewMode) String() string { return string(m) }
