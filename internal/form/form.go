// Package form maps time entries to and from an editable group of fields.
// The id field is always present and never editable.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/icicle-admin/internal/model"
)

// Value is the entity-or-draft shape the group is seeded with and
// extracted into. ID is nil for a draft.
type Value struct {
	ID            *int64
	Date          *time.Time
	MinutesWorked *int
	TaskName      *string
	User          *model.UserRef
}

// ValueOf seeds a group for editing a persisted entry.
func ValueOf(e model.TimeEntry) Value {
	id := e.ID
	return Value{
		ID:            &id,
		Date:          e.Date,
		MinutesWorked: e.MinutesWorked,
		TaskName:      e.TaskName,
		User:          e.User,
	}
}

// ValueOfDraft seeds a group for creating an entry.
func ValueOfDraft(d model.NewTimeEntry) Value {
	return Value{
		Date:          d.Date,
		MinutesWorked: d.MinutesWorked,
		TaskName:      d.TaskName,
		User:          d.User,
	}
}

// IsNew reports whether v describes an entry that has not been created yet.
func (v Value) IsNew() bool {
	return v.ID == nil
}

// Entry returns v as a persisted entry. It must only be called when !IsNew().
func (v Value) Entry() model.TimeEntry {
	e := model.TimeEntry{
		Date:          v.Date,
		MinutesWorked: v.MinutesWorked,
		TaskName:      v.TaskName,
		User:          v.User,
	}
	if v.ID != nil {
		e.ID = *v.ID
	}
	return e
}

// Draft returns v without its ID.
func (v Value) Draft() model.NewTimeEntry {
	return model.NewTimeEntry{
		Date:          v.Date,
		MinutesWorked: v.MinutesWorked,
		TaskName:      v.TaskName,
		User:          v.User,
	}
}

// Group is the editable field group for a time entry.
type Group struct {
	ID            Control[*int64]
	Date          Control[*time.Time]
	MinutesWorked Control[*int]
	TaskName      Control[*string]
	User          Control[*model.UserRef]
}

// defaults are merged under every seed. Only the id has one: nil.
func defaults() Value {
	return Value{}
}

// merge overlays the fields seed sets onto the defaults.
func merge(seed Value) Value {
	v := defaults()
	if seed.ID != nil {
		v.ID = seed.ID
	}
	if seed.Date != nil {
		v.Date = seed.Date
	}
	if seed.MinutesWorked != nil {
		v.MinutesWorked = seed.MinutesWorked
	}
	if seed.TaskName != nil {
		v.TaskName = seed.TaskName
	}
	if seed.User != nil {
		v.User = seed.User
	}
	return v
}

// Build creates a group seeded from seed. A zero Value yields an empty draft.
func Build(seed Value) *Group {
	v := merge(seed)
	return &Group{
		ID:            newControl(v.ID, false, true),
		Date:          newControl(v.Date, true, false),
		MinutesWorked: newControl(v.MinutesWorked, true, false),
		TaskName:      newControl(v.TaskName, true, false),
		User:          newControl(v.User, false, false),
	}
}

// Extract reads every control, the disabled id included.
func Extract(g *Group) Value {
	return Value{
		ID:            g.ID.Value(),
		Date:          g.Date.Value(),
		MinutesWorked: g.MinutesWorked.Value(),
		TaskName:      g.TaskName.Value(),
		User:          g.User.Value(),
	}
}

// Reset re-populates g from seed merged with defaults. The id stays disabled.
func Reset(g *Group, seed Value) {
	v := merge(seed)
	g.ID.reset(v.ID, true)
	g.Date.reset(v.Date, false)
	g.MinutesWorked.reset(v.MinutesWorked, false)
	g.TaskName.reset(v.TaskName, false)
	g.User.reset(v.User, false)
}

// ValidationError lists the fields that failed their rules.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid time entry: %s", strings.Join(e.Fields, ", "))
}

// ErrInvalid matches any *ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid time entry")

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Validate checks the editable controls. The id is exempt: a draft has none.
func (g *Group) Validate() error {
	var bad []string
	if g.Date.Required() && g.Date.Value() == nil {
		bad = append(bad, "date is required")
	}
	switch mw := g.MinutesWorked.Value(); {
	case mw == nil && g.MinutesWorked.Required():
		bad = append(bad, "minutesWorked is required")
	case mw != nil && *mw < 0:
		bad = append(bad, "minutesWorked must not be negative")
	}
	if tn := g.TaskName.Value(); g.TaskName.Required() && (tn == nil || *tn == "") {
		bad = append(bad, "taskName is required")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
