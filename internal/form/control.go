package form

import "errors"

// ErrDisabled is returned when a value is set on a disabled control.
var ErrDisabled = errors.New("control is disabled")

// Control holds one editable value together with its presence rule.
type Control[T any] struct {
	value    T
	required bool
	disabled bool
}

func newControl[T any](v T, required, disabled bool) Control[T] {
	return Control[T]{value: v, required: required, disabled: disabled}
}

// Value returns the current value, whether or not the control is disabled.
func (c *Control[T]) Value() T { return c.value }

// Set replaces the value. Disabled controls refuse edits.
func (c *Control[T]) Set(v T) error {
	if c.disabled {
		return ErrDisabled
	}
	c.value = v
	return nil
}

func (c *Control[T]) Disabled() bool { return c.disabled }
func (c *Control[T]) Required() bool { return c.required }

// reset overwrites value and disabled state; only the group may do that.
func (c *Control[T]) reset(v T, disabled bool) {
	c.value = v
	c.disabled = disabled
}
