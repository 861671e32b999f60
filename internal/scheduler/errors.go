package scheduler

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed is matched by every error caused by question
// generation producing nothing usable.
var ErrGenerationFailed = errors.New("question generation failed")

// GenerationError carries the cause of a failed generation.
type GenerationError struct {
	ObjectiveID string
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s for objective %s: %v", ErrGenerationFailed, e.ObjectiveID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports ErrGenerationFailed as a match so callers need not know the
// concrete type.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
