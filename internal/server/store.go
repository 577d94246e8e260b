package server

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/collection"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

var (
	errEntryNotFound = errors.New("time entry not found")
	errUnknownUser   = errors.New("unknown user")
	errSortField     = errors.New("unknown sort field")
)

// Store keeps time entries and users in process memory.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]model.TimeEntry
	users   []model.User
}

// NewStore returns a store that knows the given users.
func NewStore(users []model.User) *Store {
	return &Store{
		nextID:  1,
		entries: make(map[int64]model.TimeEntry),
		users:   users,
	}
}

// Users returns the known users.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}

// Create stores d under a fresh ID.
func (s *Store) Create(d model.NewTimeEntry) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUser(d.User); err != nil {
		return model.TimeEntry{}, err
	}
	e := model.TimeEntry{
		ID:            s.nextID,
		Date:          d.Date,
		MinutesWorked: d.MinutesWorked,
		TaskName:      d.TaskName,
		User:          d.User,
	}
	s.nextID++
	s.entries[e.ID] = e
	return e, nil
}

// Replace overwrites an existing entry.
func (s *Store) Replace(e model.TimeEntry) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		return model.TimeEntry{}, errEntryNotFound
	}
	if err := s.checkUser(e.User); err != nil {
		return model.TimeEntry{}, err
	}
	s.entries[e.ID] = e
	return e, nil
}

// Merge applies the non-nil fields of patch to the stored entry.
func (s *Store) Merge(patch model.TimeEntry) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[patch.ID]
	if !ok {
		return model.TimeEntry{}, errEntryNotFound
	}
	if patch.Date != nil {
		e.Date = patch.Date
	}
	if patch.MinutesWorked != nil {
		e.MinutesWorked = patch.MinutesWorked
	}
	if patch.TaskName != nil {
		e.TaskName = patch.TaskName
	}
	if patch.User != nil {
		if err := s.checkUser(patch.User); err != nil {
			return model.TimeEntry{}, err
		}
		e.User = patch.User
	}
	s.entries[e.ID] = e
	return e, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (model.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Page returns one page of entries ordered by sorts, then by id, along
// with the total number of entries.
func (s *Store) Page(page, size int, sorts []client.Sort) ([]model.TimeEntry, int, error) {
	for _, k := range sorts {
		if _, ok := comparators[k.Field]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", errSortField, k.Field)
		}
	}

	s.mu.Lock()
	all := make([]model.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	s.mu.Unlock()

	slices.SortFunc(all, func(a, b model.TimeEntry) int {
		for _, k := range sorts {
			c := comparators[k.Field](a, b)
			if k.Direction == client.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(all)
	from := total
	if page <= total/size {
		from = min(page*size, total)
	}
	to := min(from+size, total)
	return all[from:to], total, nil
}

func (s *Store) checkUser(ref *model.UserRef) error {
	if ref == nil {
		return nil
	}
	if _, ok := collection.Index(s.users, model.UserIdentity)[ref.ID]; !ok {
		return fmt.Errorf("%w: %d", errUnknownUser, ref.ID)
	}
	return nil
}

// comparators orders entries by field; absent values sort first.
var comparators = map[string]func(a, b model.TimeEntry) int{
	"id": func(a, b model.TimeEntry) int { return cmp.Compare(a.ID, b.ID) },
	"date": func(a, b model.TimeEntry) int {
		if a.Date == nil || b.Date == nil {
			return comparePresence(a.Date != nil, b.Date != nil)
		}
		return a.Date.Compare(*b.Date)
	},
	"minutesWorked": func(a, b model.TimeEntry) int {
		if a.MinutesWorked == nil || b.MinutesWorked == nil {
			return comparePresence(a.MinutesWorked != nil, b.MinutesWorked != nil)
		}
		return cmp.Compare(*a.MinutesWorked, *b.MinutesWorked)
	},
	"taskName": func(a, b model.TimeEntry) int {
		if a.TaskName == nil || b.TaskName == nil {
			return comparePresence(a.TaskName != nil, b.TaskName != nil)
		}
		return strings.Compare(*a.TaskName, *b.TaskName)
	},
}

func comparePresence(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}
