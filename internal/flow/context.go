package flow

import (
	"errors"
	"fmt"
	"reflect"
)

// DefectError reports a step-ordering bug: a step stored a value whose type
// was already present, or asked for a value no prior step staged. It is never
// a user-facing condition and must not be retried or swallowed.
type DefectError struct {
	Op   string
	Type string
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("flow context defect: %s %s", e.Op, e.Type)
}

// IsDefect reports whether err is a flow context defect.
func IsDefect(err error) bool {
	var d *DefectError
	return errors.As(err, &d)
}

// Context carries typed values between the steps of one flow execution.
// It holds at most one value per type, is discarded when the execution ends
// and is never shared across requests, so it needs no locking.
type Context struct {
	values map[reflect.Type]any
}

func NewContext() *Context {
	return &Context{values: make(map[reflect.Type]any)}
}

// Put stores v keyed by its type. Storing a second value of a type that is
// already present is a defect: it fails instead of overwriting.
func Put[T any](c *Context, v T) error {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := c.values[key]; ok {
		return &DefectError{Op: "duplicate put of", Type: key.String()}
	}
	c.values[key] = v
	return nil
}

// Get retrieves the value stored for type T, failing with a defect when no
// prior step staged one.
func Get[T any](c *Context) (T, error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := c.values[key]
	if !ok {
		var zero T
		return zero, &DefectError{Op: "missing value of", Type: key.String()}
	}
	return v.(T), nil
}
