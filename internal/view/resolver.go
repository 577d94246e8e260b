package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

// Resolver loads the entry an id argument refers to.
type Resolver struct {
	Entries Entries
}

// Resolve returns nil, nil for an empty idArg, meaning a new entry is being
// created. An id the backend has no entity for yields ErrNotFound, whether the
// backend answered 404 or an empty body.
func (r Resolver) Resolve(ctx context.Context, idArg string) (*model.TimeEntry, error) {
	idArg = strings.TrimSpace(idArg)
	if idArg == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, idArg)
	}

	res, err := r.Entries.Find(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if res.Body == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return res.Body, nil
}
