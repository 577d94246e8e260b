package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/form"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

// ErrNoEntity is returned by Save when the backend accepted the request but
// sent no entity back.
var ErrNoEntity = errors.New("backend returned no time entry")

// Editor drives the create/edit flow of a single entry.
type Editor struct {
	entries Entries
	users   Users

	Form *form.Group
	// UserOptions are the users the entry may be assigned to.
	UserOptions []model.User
	// Saving is true while a save request is in flight.
	Saving bool
}

// NewEditor returns an editor with an empty draft.
func NewEditor(entries Entries, users Users) *Editor {
	return &Editor{
		entries: entries,
		users:   users,
		Form:    form.Build(form.Value{}),
	}
}

// Load seeds the form from entry (nil for a new one) and fetches the user
// options, making sure the entry's current user is among them.
func (e *Editor) Load(ctx context.Context, entry *model.TimeEntry) error {
	seed := form.Value{}
	if entry != nil {
		seed = form.ValueOf(*entry)
	}
	form.Reset(e.Form, seed)

	users, err := e.users.QueryUsers(ctx, client.QueryOptions{})
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	var current *model.User
	if seed.User != nil {
		current = &model.User{ID: seed.User.ID}
	}
	e.UserOptions = e.users.MergeUsersIfMissing(users, current)
	return nil
}

// Save validates the form and sends it as an update when it carries an id,
// otherwise as a create. On failure the form is left untouched so the
// caller can correct and retry.
func (e *Editor) Save(ctx context.Context) (*model.TimeEntry, error) {
	if err := e.Form.Validate(); err != nil {
		return nil, err
	}

	e.Saving = true
	defer func() { e.Saving = false }()

	v := form.Extract(e.Form)
	var (
		res *client.EntityResponse
		err error
	)
	if v.IsNew() {
		res, err = e.entries.Create(ctx, v.Draft())
	} else {
		res, err = e.entries.Update(ctx, v.Entry())
	}
	if err != nil {
		return nil, fmt.Errorf("saving time entry: %w", err)
	}
	if res.Body == nil {
		return nil, ErrNoEntity
	}
	return res.Body, nil
}
