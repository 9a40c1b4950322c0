package filter

import "errors"

// Common errors returned by the filter package.
var (
	// ErrEmptyExpression indicates an empty or whitespace-only expression.
	ErrEmptyExpression = errors.New("empty filter expression")

	// ErrNotBoolean indicates an expression that does not evaluate to a boolean.
	ErrNotBoolean = errors.New("filter expression must evaluate to a boolean")
)
