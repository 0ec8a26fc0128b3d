package types

import "fmt"

// ErrorCode classifies a treepath error.
type ErrorCode string

const (
	// S01xx: lexical errors
	ErrStringNotClosed  ErrorCode = "S0101"
	ErrInvalidCharacter ErrorCode = "S0102"

	// S02xx: structural errors
	ErrUnmatchedBracket  ErrorCode = "S0201"
	ErrMissingOperand    ErrorCode = "S0202"
	ErrMultipleRoots     ErrorCode = "S0203"
	ErrStepAfterTerminal ErrorCode = "S0204"

	// T10xx: type errors, reported at evaluation time
	ErrInvalidOperand     ErrorCode = "T1001"
	ErrLiteralMismatch    ErrorCode = "T1002"
	ErrUnorderedOperands  ErrorCode = "T1003"
	ErrInvalidTextOperand ErrorCode = "T1004"

	// U1xxx: unsupported features
	ErrUnsupportedLength ErrorCode = "U1001"
)

// Error is the structured error type returned by compilation and evaluation.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int // byte offset into the query, or -1 when unknown
	Token    string
	Err      error
}

// NewError creates a new coded error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsStructural reports whether err is a compile-time structural error.
func IsStructural(err error) bool {
	e, ok := err.(*Error)
	return ok && (e.Code == ErrUnmatchedBracket || e.Code == ErrMissingOperand ||
		e.Code == ErrMultipleRoots || e.Code == ErrStepAfterTerminal)
}

// IsType reports whether err is an evaluation-time type error.
func IsType(err error) bool {
	e, ok := err.(*Error)
	return ok && (e.Code == ErrInvalidOperand || e.Code == ErrLiteralMismatch ||
		e.Code == ErrUnorderedOperands || e.Code == ErrInvalidTextOperand)
}

// IsUnsupported reports whether err signals a reserved, unimplemented feature.
func IsUnsupported(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == ErrUnsupportedLength
}
