package view

import (
	"golang.org/x/oauth2"
)

// Gate admits a command only when a stored, unexpired token exists.
type Gate struct {
	// LoadToken returns the stored token, or nil when there is none.
	LoadToken func() (*oauth2.Token, error)
}

// Check returns the token to authenticate with, or ErrUnauthenticated.
func (g Gate) Check() (*oauth2.Token, error) {
	tok, err := g.LoadToken()
	if err != nil {
		return nil, err
	}
	if tok == nil || !tok.Valid() {
		return nil, ErrUnauthenticated
	}
	return tok, nil
}
