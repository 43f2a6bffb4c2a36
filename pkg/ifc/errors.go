package ifc

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrSyntax          = errors.New("step syntax error")
	ErrNoDataSection   = errors.New("no DATA section")
	ErrNoPropertyIndex = errors.New("property index not built")
	ErrNilEntity       = errors.New("nil entity")
)

// ParseError reports where in a STEP file the reader gave up.
type ParseError struct {
	Line   int    // 1-based line of the offending token
	Entity uint64 // instance being parsed (0 when outside an instance)
	Msg    string
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Entity != 0 {
		return fmt.Sprintf("line %d (#%d): %s: %v", e.Line, e.Entity, e.Msg, e.Cause)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
