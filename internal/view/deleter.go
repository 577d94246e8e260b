package view

import (
	"context"
	"fmt"
)

// Outcome is how a delete confirmation ended.
type Outcome string

const (
	ItemDeleted Outcome = "deleted"
	Cancelled   Outcome = "cancelled"
)

// Deleter backs the delete confirmation.
type Deleter struct {
	Entries Entries
}

// Confirm deletes the entry with the given id.
func (d Deleter) Confirm(ctx context.Context, id int64) (Outcome, error) {
	if _, err := d.Entries.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("deleting time entry %d: %w", id, err)
	}
	return ItemDeleted, nil
}

// Cancel dismisses the confirmation without a request.
func (Deleter) Cancel() Outcome {
	return Cancelled
}
