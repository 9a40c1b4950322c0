// Package filter compiles expr expressions for selecting Jellyfin users.
//
// Expressions see the user under the User variable plus a small set of
// helper functions, e.g.:
//
//	User.Policy.IsAdministrator
//	contains(User.Name, "test") and not User.Policy.IsDisabled
//	lastActivityDaysAgo(User) > 90
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jellyfin-tools/jellyctl/jellyfin"
)

// Filter represents a compiled user filter expression.
type Filter struct {
	program *vm.Program
	expr    string
}

// helperEnv returns the static helper functions available to expressions.
func helperEnv() map[string]interface{} {
	return map[string]interface{}{
		// String helpers, all case insensitive.
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		// Date helpers. The server reports activity timestamps as RFC3339
		// strings; missing or unparseable dates count as never active.
		"lastActivityDaysAgo": func(user jellyfin.User) int {
			return daysAgo(user.LastActivityDate)
		},
		"lastLoginDaysAgo": func(user jellyfin.User) int {
			return daysAgo(user.LastLoginDate)
		},
		"now": time.Now,
	}
}

// daysAgo converts an optional server timestamp to whole days before now.
// Returns -1 when the date is absent or unparseable.
func daysAgo(date *string) int {
	if date == nil || *date == "" {
		return -1
	}
	t, err := time.Parse(time.RFC3339, *date)
	if err != nil {
		return -1
	}
	return int(time.Since(t).Hours() / 24)
}

// Compile compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	env := helperEnv()
	env["User"] = jellyfin.User{}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

// Match evaluates the filter against a user.
func (f *Filter) Match(user jellyfin.User) (bool, error) {
	env := helperEnv()
	env["User"] = user

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBoolean, result)
	}
	return matched, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Select returns the users matching the expression, compiling it through
// the package cache.
func Select(expression string, users []jellyfin.User) ([]jellyfin.User, error) {
	f, err := Cached(expression)
	if err != nil {
		return nil, err
	}

	var matched []jellyfin.User
	for _, user := range users {
		ok, err := f.Match(user)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, user)
		}
	}
	return matched, nil
}
