package app

import "fmt"

// ValidationError rejects user input. The operation aborts with no
// state change.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a referenced entity does not exist in the
// workspace.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func notFound(kind, id string) error {
	return NotFoundError{Kind: kind, ID: id}
}
