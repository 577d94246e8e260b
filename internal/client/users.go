package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Tiliavir/icicle-admin/internal/collection"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

const usersPath = "/api/users"

// QueryUsers lists the users a time entry may be assigned to.
func (c *Client) QueryUsers(ctx context.Context, opts QueryOptions) ([]model.User, error) {
	_, body, err := c.do(ctx, http.MethodGet, usersPath, opts.Values(), "", nil)
	if err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return nil, nil
	}
	var users []model.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

// MergeUsersIfMissing prepends the candidate users not already in users.
func (c *Client) MergeUsersIfMissing(users []model.User, candidates ...*model.User) []model.User {
	return collection.MergeIfMissing(users, model.UserIdentity, candidates...)
}

// SameUser reports whether a and b reference the same user.
func (c *Client) SameUser(a, b *model.UserRef) bool {
	return model.SameUser(a, b)
}
