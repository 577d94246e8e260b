package view

import (
	"context"
	"fmt"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

// State is the load state of a List.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "idle"
}

// DefaultSort orders listings by ascending id.
var DefaultSort = []client.Sort{{Field: "id", Direction: client.Asc}}

// List is one page of the entry listing.
type List struct {
	entries Entries

	Page int
	Size int
	Sort []client.Sort

	State State
	Err   error
	Items []model.TimeEntry
	Total int
	Links map[string]int
}

// NewList returns a list of the first page of size entries in default order.
func NewList(entries Entries, size int) *List {
	return &List{
		entries: entries,
		Size:    size,
		Sort:    DefaultSort,
	}
}

// Load fetches the current page.
func (l *List) Load(ctx context.Context) error {
	l.State = Loading
	page, size := l.Page, l.Size
	opts := client.QueryOptions{Page: &page, Sort: l.Sort}
	if size > 0 {
		opts.Size = &size
	}

	res, err := l.entries.Query(ctx, opts)
	if err != nil {
		l.State, l.Err = Failed, err
		return fmt.Errorf("listing time entries: %w", err)
	}
	links, err := res.Links()
	if err != nil {
		l.State, l.Err = Failed, err
		return fmt.Errorf("parsing pagination links: %w", err)
	}

	l.Items = res.Body
	l.Links = links
	if n, ok := res.TotalCount(); ok {
		l.Total = n
	} else {
		l.Total = len(res.Body)
	}
	l.State, l.Err = Loaded, nil
	return nil
}

// NextPage reports the page after the current one, if the backend linked it.
func (l *List) NextPage() (int, bool) {
	p, ok := l.Links["next"]
	return p, ok
}

// TrackID is the identity rows are keyed by.
func (l *List) TrackID(e model.TimeEntry) int64 {
	return model.IdentityOf(e)
}
