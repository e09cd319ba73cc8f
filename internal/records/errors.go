package records

import (
	"errors"
	"fmt"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("records: malformed input")

// ParseError reports malformed input text. Line is 1-based, 0 when unknown.
type ParseError struct {
	Format  string
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("records: parse %s (line %d): %v", e.Format, e.Line, e.Wrapped)
	}
	return fmt.Sprintf("records: parse %s: %v", e.Format, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
