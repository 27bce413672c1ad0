package plugin

import (
	"errors"
	"fmt"
)

// ErrPanic marks a phase failure caused by a panicking plugin.
var ErrPanic = errors.New("plugin panicked")

// PhaseError records a plugin that failed one registration phase.
type PhaseError struct {
	PluginUID string
	Phase     Phase
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginUID, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
