package contracts

import "context"

// Confirmer is the yes/no gate in front of destructive operations.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Answer is a Confirmer whose answer is already known, e.g. posted by a form.
type Answer bool

// Confirm returns the fixed answer.
func (a Answer) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
