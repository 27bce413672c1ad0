package ingredient

import (
	"errors"

	"github.com/zjrosen/almanac/internal/mainthread"
)

var (
	// ErrPrecondition is returned for nil arguments, empty batches and similar caller mistakes.
	ErrPrecondition = errors.New("precondition violated")

	// ErrUnknownIngredientType is returned when a value or uid matches no registered type.
	ErrUnknownIngredientType = errors.New("unknown ingredient type")

	// ErrDuplicateType is returned when a type uid or Go value type is registered twice.
	ErrDuplicateType = errors.New("ingredient type already registered")

	// ErrDuplicateInterpreter is returned when a base id already has a subtype interpreter.
	ErrDuplicateInterpreter = errors.New("subtype interpreter already registered")

	// ErrWrongThread is returned by runtime mutations made off the main goroutine.
	ErrWrongThread = mainthread.ErrWrongThread
)
