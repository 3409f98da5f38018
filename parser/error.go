package parser

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/token"
)

// ErrorCode identifies the specific parse failure, following the
// tokenizer's stable-numeric-code convention.
type ErrorCode int

const (
	UnexpectedToken ErrorCode = iota + 1
)

// Error is a parse failure with a precise position and a description
// of what the parser was attempting, e.g. "parsing membership
// expression" — always included so callers can report useful context.
type Error struct {
	Code        ErrorCode
	Description string
	Position    token.Position
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at line %d, column %d: %v", e.Description, e.Position.Line, e.Position.Column, e.Cause)
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Description, e.Position.Line, e.Position.Column)
}

func (e *Error) Unwrap() error { return e.Cause }

func unexpected(pos token.Position, description string) *Error {
	return &Error{Code: UnexpectedToken, Description: description, Position: pos}
}
