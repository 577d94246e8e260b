// Package view holds the orchestration behind the entries commands: resolving
// an entry from an id argument, editing, listing, deleting, and the login gate
// every command passes first. It has no terminal I/O of its own.
package view

import (
	"context"
	"errors"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

var (
	// ErrNotFound means the requested entry does not exist.
	ErrNotFound = errors.New("time entry not found")
	// ErrUnauthenticated means no usable login token is stored.
	ErrUnauthenticated = errors.New("not logged in (run `icicle login`)")
)

// Entries is the part of *client.Client the views use.
type Entries interface {
	Create(ctx context.Context, draft model.NewTimeEntry) (*client.EntityResponse, error)
	Update(ctx context.Context, e model.TimeEntry) (*client.EntityResponse, error)
	Find(ctx context.Context, id int64) (*client.EntityResponse, error)
	Query(ctx context.Context, opts client.QueryOptions) (*client.ArrayResponse, error)
	Delete(ctx context.Context, id int64) (*client.Response, error)
}

// Users is the user collaborator the editor loads relation options from.
type Users interface {
	QueryUsers(ctx context.Context, opts client.QueryOptions) ([]model.User, error)
	MergeUsersIfMissing(users []model.User, candidates ...*model.User) []model.User
}
