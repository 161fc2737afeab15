package wheels

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownHandle is returned when a handle was never issued by a registry.
	ErrUnknownHandle = errors.New("wheels: unknown handle")
	// ErrInvalidState is returned when a GraphicsState field holds a value
	// outside its enumeration. It indicates a bug in the caller.
	ErrInvalidState = errors.New("wheels: invalid graphics state")
	// ErrAllocation is returned when the device refuses a geometry buffer.
	ErrAllocation = errors.New("wheels: buffer allocation failed")
	// ErrInvalidArgument is returned for counts that do not fit the supplied data.
	ErrInvalidArgument = errors.New("wheels: invalid argument")
	// ErrUnsupportedState is returned by a device asked to draw with state it
	// cannot express.
	ErrUnsupportedState = errors.New("wheels: unsupported device state")
)

// LookupError reports a handle that does not resolve in its registry.
type LookupError struct {
	Kind   string // "texture" or "font"
	Handle int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("wheels: unknown %s handle %d", e.Kind, e.Handle)
}

func (e *LookupError) Unwrap() error { return ErrUnknownHandle }

// StateError reports an out-of-enumeration GraphicsState field.
type StateError struct {
	Field string
	Value int
}

func (e *StateError) Error() string {
	return fmt.Sprintf("wheels: %s value %d is not a valid enumeration value", e.Field, e.Value)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// AllocationError reports a geometry buffer the device refused to create.
type AllocationError struct {
	Buffer string // "vertex" or "index"
	Count  int
	Limit  int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("wheels: cannot allocate %s buffer of %d elements (limit %d)", e.Buffer, e.Count, e.Limit)
}

func (e *AllocationError) Unwrap() error { return ErrAllocation }
