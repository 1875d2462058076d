package pipeline

import "fmt"

// InvalidInputError reports a caller contract violation such as a bad
// message role or an empty question. It is returned from the call
// itself and never folded into a Response.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidRoleError builds the error for a message role outside the
// accepted set. The wording is part of the public contract.
func NewInvalidRoleError(role string) *InvalidInputError {
	return &InvalidInputError{
		Message: fmt.Sprintf("Invalid message role: '%s'. Must be 'user', 'assistant', or 'system'", role),
	}
}

// GenerationError reports that the model call failed or that no
// statement could be isolated from the model's output.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query generation failed: %s; %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("query generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ValidationError reports a structurally malformed statement caught
// before execution.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("query validation failed: %s", e.Reason)
}
