package diagnostics

import (
	"errors"
	"fmt"
)

type ErrorCode string

// Runtime error codes
const (
	ErrR001 ErrorCode = "R001" // Type mismatch
	ErrR002 ErrorCode = "R002" // Index out of range
	ErrR003 ErrorCode = "R003" // No such attribute/method
	ErrR004 ErrorCode = "R004" // Missing or invalid argument
	ErrR005 ErrorCode = "R005" // Calling a non-callable value
	ErrR006 ErrorCode = "R006" // Non-hashable dictionary key
	ErrR007 ErrorCode = "R007" // Module not found, not loadable, or missing a name
	ErrR008 ErrorCode = "R008" // Integer division by zero
	ErrR009 ErrorCode = "R009" // I/O failure in an intrinsic or native module
)

var codeDescriptions = map[ErrorCode]string{
	ErrR001: "type mismatch",
	ErrR002: "index out of range",
	ErrR003: "missing member",
	ErrR004: "argument",
	ErrR005: "non-callable",
	ErrR006: "non-hashable",
	ErrR007: "module",
	ErrR008: "arithmetic",
	ErrR009: "i/o",
}

// Description returns a short human name for the code.
func (c ErrorCode) Description() string {
	if d, ok := codeDescriptions[c]; ok {
		return d
	}
	return "unknown"
}

// RuntimeError is the single failure type of the runtime. Every one is
// unrecoverable: it unwinds to the top-level handler, which reports it and
// terminates the program.
type RuntimeError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	return "Runtime Error: " + e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// Is matches another RuntimeError with the same code and either no message
// (a sentinel) or the same message.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks
var (
	ErrTypeMismatch   = &RuntimeError{Code: ErrR001}
	ErrOutOfRange     = &RuntimeError{Code: ErrR002}
	ErrMissingMember  = &RuntimeError{Code: ErrR003}
	ErrArgument       = &RuntimeError{Code: ErrR004}
	ErrNotCallable    = &RuntimeError{Code: ErrR005}
	ErrNotHashable    = &RuntimeError{Code: ErrR006}
	ErrModule         = &RuntimeError{Code: ErrR007}
	ErrDivisionByZero = &RuntimeError{Code: ErrR008}
	ErrIO             = &RuntimeError{Code: ErrR009}
)

func NewError(code ErrorCode, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a RuntimeError that keeps cause as its underlying diagnostic.
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the code of the first RuntimeError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}

// TypeMismatch reports an operator applied to operands it does not support.
func TypeMismatch(symbol string) *RuntimeError {
	return NewError(ErrR001, "Type mismatch(%s).", symbol)
}
