// Package wire converts time entries between their in-memory form and the
// JSON shape exchanged with the REST API. Only the date differs: in memory it
// is a time.Time, on the wire a YYYY-MM-DD string.
package wire

import (
	"fmt"
	"time"

	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/timecalc"
)

// RestTimeEntry is the wire representation of a time entry. An absent date
// is sent as null; other absent fields are omitted. The backend ignores nulls
// on PATCH.
type RestTimeEntry struct {
	ID            *int64         `json:"id,omitempty"`
	Date          *string        `json:"date"`
	MinutesWorked *int           `json:"minutesWorked,omitempty"`
	TaskName      *string        `json:"taskName,omitempty"`
	User          *model.UserRef `json:"user,omitempty"`
}

// ToWire converts a persisted entry, or a partial update carrying only some
// fields, to its wire form.
func ToWire(e model.TimeEntry) RestTimeEntry {
	id := e.ID
	return RestTimeEntry{
		ID:            &id,
		Date:          formatDate(e.Date),
		MinutesWorked: e.MinutesWorked,
		TaskName:      e.TaskName,
		User:          e.User,
	}
}

// NewToWire converts a draft to its wire form. The ID stays absent.
func NewToWire(d model.NewTimeEntry) RestTimeEntry {
	return RestTimeEntry{
		Date:          formatDate(d.Date),
		MinutesWorked: d.MinutesWorked,
		TaskName:      d.TaskName,
		User:          d.User,
	}
}

// FromWire converts a wire record to a time entry. A missing date stays nil;
// a present one becomes midnight UTC of that day.
func FromWire(r RestTimeEntry) (model.TimeEntry, error) {
	e := model.TimeEntry{
		MinutesWorked: r.MinutesWorked,
		TaskName:      r.TaskName,
		User:          r.User,
	}
	if r.ID != nil {
		e.ID = *r.ID
	}
	if r.Date != nil && *r.Date != "" {
		d, err := timecalc.ParseDate(*r.Date)
		if err != nil {
			return model.TimeEntry{}, fmt.Errorf("time entry %d: %w", e.ID, err)
		}
		e.Date = &d
	}
	return e, nil
}

// FromWireCollection applies FromWire to every record. A nil input yields nil.
func FromWireCollection(records []RestTimeEntry) ([]model.TimeEntry, error) {
	if records == nil {
		return nil, nil
	}
	out := make([]model.TimeEntry, 0, len(records))
	for _, r := range records {
		e, err := FromWire(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timecalc.FormatDate(*t)
	return &s
}
