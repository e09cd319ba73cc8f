package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRole matches every *MissingRoleError.
	ErrMissingRole = errors.New("graph: required role not assigned")

	// ErrIntervalDeferred matches every *IntervalResolutionDeferred.
	ErrIntervalDeferred = errors.New("graph: interval bounds must be supplied")

	// ErrInvalidRange indicates min > max.
	ErrInvalidRange = errors.New("graph: invalid time range")
)

// MissingRoleError reports a source or target role that is unset or names a
// field outside the schema.
type MissingRoleError struct {
	Role  string
	Field string
}

func (e *MissingRoleError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("graph: %s field is required", e.Role)
	}
	return fmt.Sprintf("graph: %s field %q not in schema", e.Role, e.Field)
}

func (e *MissingRoleError) Is(target error) bool {
	return target == ErrMissingRole
}

// IntervalResolutionDeferred is returned by Map when an interval role is
// mapped but no record carries a parseable interval. The mapping is otherwise
// complete; call Resolve with externally supplied bounds to finish it.
type IntervalResolutionDeferred struct {
	Graph *Graph
}

func (e *IntervalResolutionDeferred) Error() string {
	return fmt.Sprintf("graph: no parseable values in interval field %q, bounds required", e.Graph.Roles.Interval)
}

func (e *IntervalResolutionDeferred) Is(target error) bool {
	return target == ErrIntervalDeferred
}

// Resolve completes the mapping with the given bounds. The deferred graph is
// not modified; a copy carrying the range is returned.
func (e *IntervalResolutionDeferred) Resolve(min, max int) (*Graph, error) {
	if min > max {
		return nil, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, min, max)
	}
	g := *e.Graph
	g.Range = &TimeRange{Min: min, Max: max}
	return &g, nil
}
