package model

// UserRef is the projection of an externally owned user that a time entry
// points at. Only the key is carried.
type UserRef struct {
	ID int64 `json:"id"`
}

// User is the listing shape returned by the user resource.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Ref returns the reference form of u.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID}
}

// UserIdentity returns the key of u.
func UserIdentity(u User) int64 {
	return u.ID
}

// SameUser applies the same identity rule as SameIdentity to user references.
func SameUser(a, b *UserRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
