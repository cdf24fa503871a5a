// internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	LexError        ErrorType = "LexError"
	DecodeError     ErrorType = "DecodeError"
	StructuralError ErrorType = "StructuralError"
	InputError      ErrorType = "InputError"
)

// KonekoError represents a fatal language error. Line is 1-based and zero
// when the error has no source location; Lexeme is the offending text.
type KonekoError struct {
	Type    ErrorType
	Message string
	Line    int
	Lexeme  string
}

// Error implements the error interface
func (e *KonekoError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Lexeme != "" {
		msg = fmt.Sprintf("%s (at %q)", msg, e.Lexeme)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s on line %d", msg, e.Line)
	}
	return msg
}

func NewLexError(message string, line int, lexeme string) *KonekoError {
	return &KonekoError{Type: LexError, Message: message, Line: line, Lexeme: lexeme}
}

func NewDecodeError(message string, token string) *KonekoError {
	return &KonekoError{Type: DecodeError, Message: message, Lexeme: token}
}

func NewStructuralError(message string) *KonekoError {
	return &KonekoError{Type: StructuralError, Message: message}
}

func NewInputError(message string) *KonekoError {
	return &KonekoError{Type: InputError, Message: message}
}

// TypeOf reports the taxonomy type of err, unwrapping as needed.
func TypeOf(err error) (ErrorType, bool) {
	var ke *KonekoError
	if stderrors.As(err, &ke) {
		return ke.Type, true
	}
	return "", false
}
