package mdtree

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedRole is returned when an element is created with a
	// role outside the vocabulary.
	ErrUnsupportedRole = errors.New("unsupported role")
	// ErrUnknownRole is returned by Lower when it meets a role it cannot
	// lower.
	ErrUnknownRole = errors.New("unknown role")
	// ErrInvalidProperty is returned when a property value has the wrong
	// type or an unrecognized value.
	ErrInvalidProperty = errors.New("invalid property")
	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid options")
)

// RoleError reports a role outside the vocabulary.
type RoleError struct {
	Op   string // "create", "parse" or "lower"
	Role Role
	Err  error // ErrUnsupportedRole or ErrUnknownRole
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, string(e.Role), e.Err)
}

func (e *RoleError) Unwrap() error { return e.Err }

// PropertyError reports a property whose value cannot be used.
type PropertyError struct {
	Role Role   // Role of the element carrying the property
	Key  string // Property name
	Want string // Expected type or value set
	Got  any    // Offending value
}

func (e *PropertyError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s.%s: expected %s, got %s", e.Role, e.Key, e.Want, describe(e.Got))
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Key, e.Want, describe(e.Got))
}

func (e *PropertyError) Unwrap() error { return ErrInvalidProperty }

// OptionError reports an unrecognized style option value.
type OptionError struct {
	Field string
	Value string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %s: unrecognized value %q", e.Field, e.Value)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOptions }

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("string %q", v)
	default:
		return fmt.Sprintf("%T(%v)", v, v)
	}
}

// invariant panics with a formatted message when cond is false. It guards
// against misuse of the store that no caller can recover from.
func invariant(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic("Invariant failed: " + fmt.Sprintf(format, args...))
}
