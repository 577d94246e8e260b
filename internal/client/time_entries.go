package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Tiliavir/icicle-admin/internal/collection"
	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/wire"
)

const timeEntriesPath = "/api/time-entries"

// EntityResponse is the result of a single-entity exchange. Body is nil
// when the server returned no entity.
type EntityResponse struct {
	Response
	Body *model.TimeEntry
}

// ArrayResponse is the result of a listing exchange.
type ArrayResponse struct {
	Response
	Body []model.TimeEntry
}

// Create posts a draft and returns the stored entry with its new ID.
func (c *Client) Create(ctx context.Context, draft model.NewTimeEntry) (*EntityResponse, error) {
	return c.entity(ctx, http.MethodPost, timeEntriesPath, jsonContentType, wire.NewToWire(draft))
}

// Update replaces the stored entry with e.
func (c *Client) Update(ctx context.Context, e model.TimeEntry) (*EntityResponse, error) {
	if e.ID <= 0 {
		return nil, ErrMissingID
	}
	return c.entity(ctx, http.MethodPut, entryPath(e.ID), jsonContentType, wire.ToWire(e))
}

// PartialUpdate sends only the non-nil fields of patch; the server leaves
// the others untouched.
func (c *Client) PartialUpdate(ctx context.Context, patch model.TimeEntry) (*EntityResponse, error) {
	if patch.ID <= 0 {
		return nil, ErrMissingID
	}
	return c.entity(ctx, http.MethodPatch, entryPath(patch.ID), mergePatchContentType, wire.ToWire(patch))
}

// Find fetches one entry by ID.
func (c *Client) Find(ctx context.Context, id int64) (*EntityResponse, error) {
	return c.entity(ctx, http.MethodGet, entryPath(id), "", nil)
}

// Query lists entries. Pagination headers are available on the response.
func (c *Client) Query(ctx context.Context, opts QueryOptions) (*ArrayResponse, error) {
	resp, body, err := c.do(ctx, http.MethodGet, timeEntriesPath, opts.Values(), "", nil)
	if err != nil {
		return nil, err
	}
	out := &ArrayResponse{Response: *resp}
	if emptyBody(body) {
		return out, nil
	}
	var records []wire.RestTimeEntry
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding time entries: %w", err)
	}
	if out.Body, err = wire.FromWireCollection(records); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an entry. The response carries no body.
func (c *Client) Delete(ctx context.Context, id int64) (*Response, error) {
	resp, _, err := c.do(ctx, http.MethodDelete, entryPath(id), nil, "", nil)
	return resp, err
}

// IdentityOf returns the key of e.
func (c *Client) IdentityOf(e model.TimeEntry) int64 {
	return model.IdentityOf(e)
}

// SameIdentity reports whether a and b denote the same stored entry.
func (c *Client) SameIdentity(a, b *model.TimeEntry) bool {
	return model.SameIdentity(a, b)
}

// MergeIfMissing prepends the candidates not already in entries.
func (c *Client) MergeIfMissing(entries []model.TimeEntry, candidates ...*model.TimeEntry) []model.TimeEntry {
	return collection.MergeIfMissing(entries, model.IdentityOf, candidates...)
}

func (c *Client) entity(ctx context.Context, method, path, contentType string, payload any) (*EntityResponse, error) {
	resp, body, err := c.do(ctx, method, path, nil, contentType, payload)
	if err != nil {
		return nil, err
	}
	out := &EntityResponse{Response: *resp}
	if emptyBody(body) {
		return out, nil
	}
	var r wire.RestTimeEntry
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decoding time entry: %w", err)
	}
	e, err := wire.FromWire(r)
	if err != nil {
		return nil, err
	}
	out.Body = &e
	return out, nil
}

func entryPath(id int64) string {
	return timeEntriesPath + "/" + strconv.FormatInt(id, 10)
}
