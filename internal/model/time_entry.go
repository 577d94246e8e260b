package model

import "time"

// TimeEntry is a persisted time entry. ID is assigned by the backing store
// and never changes afterwards. Every other field may be absent.
type TimeEntry struct {
	ID            int64
	Date          *time.Time
	MinutesWorked *int
	TaskName      *string
	User          *UserRef
}

// NewTimeEntry is a draft that has not been created yet. It carries no ID,
// so it cannot be passed where a persisted entry is required.
type NewTimeEntry struct {
	Date          *time.Time
	MinutesWorked *int
	TaskName      *string
	User          *UserRef
}

// IdentityOf returns the store-assigned key of e.
func IdentityOf(e TimeEntry) int64 {
	return e.ID
}

// SameIdentity reports whether a and b refer to the same stored record.
// Two nil references are the same; a nil and a non-nil reference never are.
func SameIdentity(a, b *TimeEntry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

// Ptr returns a pointer to v. Handy for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
