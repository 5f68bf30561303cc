package rockflow

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBuiltin marks a second registration under an existing name.
	ErrDuplicateBuiltin = errors.New("duplicate builtin")
	// ErrInvalidBuiltin marks a malformed registration entry.
	ErrInvalidBuiltin = errors.New("invalid builtin")
	// ErrRegistrySealed is returned by Register once the table is read-only.
	ErrRegistrySealed = errors.New("builtin registry is sealed")
	// ErrUnsupportedOperation marks an optional capability the context lacks.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrUnknownBuiltin is returned when a call names no registered builtin.
	ErrUnknownBuiltin = errors.New("unknown builtin")
)

// ConfigError reports a registration defect. It is fatal at start-up.
type ConfigError struct {
	Builtin string
	Err     error
	Detail  string
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rockflow: register %s: %v", e.Builtin, e.Err)
	}
	return fmt.Sprintf("rockflow: register %s: %v: %s", e.Builtin, e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UnsupportedOperationError is returned when an optional capability is
// invoked on a context that does not implement it.
type UnsupportedOperationError struct {
	Op      string
	Context string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s does not implement item access: %v", e.Op, e.Context, ErrUnsupportedOperation)
}

func (e *UnsupportedOperationError) Unwrap() error { return ErrUnsupportedOperation }

func newUnsupportedOperation(op string, ctx Context) *UnsupportedOperationError {
	return &UnsupportedOperationError{Op: op, Context: fmt.Sprintf("%T", ctx)}
}

// CallError reports a call site that does not match a builtin signature.
type CallError struct {
	Builtin string
	Arg     int // -1 for arity mismatches
	Message string
}

func (e *CallError) Error() string {
	if e.Arg < 0 {
		return fmt.Sprintf("%s: %s", e.Builtin, e.Message)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Builtin, e.Arg, e.Message)
}

// IndexError is returned for item indexes outside [0, count).
type IndexError struct {
	Index int64
	Count int64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("item index %d out of range [0, %d)", e.Index, e.Count)
}
