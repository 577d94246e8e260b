// Package auth obtains, stores and applies the bearer token the backend
// issues on login.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/icicle-admin/internal/storage"
)

// ErrBadCredentials is returned when the backend rejects a login.
var ErrBadCredentials = errors.New("invalid username or password")

// Credentials is the login request body.
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// jwtToken is the login response body.
type jwtToken struct {
	IDToken string `json:"id_token"`
}

// tokenFilePath returns the path to the stored token file.
func tokenFilePath() (string, error) {
	return storage.Path("auth", "token.json")
}

// Authenticate posts creds to {baseURL}/api/authenticate and returns the
// issued token. Expiry is taken from the token's exp claim when present.
func Authenticate(ctx context.Context, hc *http.Client, baseURL string, creds Credentials) (*oauth2.Token, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshalling credentials: %w", err)
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/api/authenticate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authenticate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrBadCredentials
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("authenticate error %d: %s", resp.StatusCode, string(msg))
	}

	var jt jwtToken
	if err := json.NewDecoder(resp.Body).Decode(&jt); err != nil {
		return nil, fmt.Errorf("decoding authenticate response: %w", err)
	}
	if jt.IDToken == "" {
		return nil, errors.New("authenticate response carried no id_token")
	}

	tok := &oauth2.Token{AccessToken: jt.IDToken, TokenType: "Bearer"}
	if claims, err := Claims(tok); err == nil && claims.ExpiresAt != nil {
		tok.Expiry = claims.ExpiresAt.Time
	}
	return tok, nil
}

// Claims decodes the registered claims of tok without verifying the
// signature; only the backend can do that.
func Claims(tok *oauth2.Token) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("decoding token claims: %w", err)
	}
	return claims, nil
}

// Subject returns the login the token was issued to, or "" if unknown.
func Subject(tok *oauth2.Token) string {
	claims, err := Claims(tok)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// LoadToken loads a previously saved token. It returns nil, nil when no
// token has been saved.
func LoadToken() (*oauth2.Token, error) {
	path, err := tokenFilePath()
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	err = storage.ReadJSON(path, &tok)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file (run `icicle login` again): %w", err)
	}
	return &tok, nil
}

// SaveToken persists tok to disk.
func SaveToken(tok *oauth2.Token) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	return storage.WriteJSON(path, tok)
}

// ClearToken removes the saved token.
func ClearToken() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	return storage.Remove(path)
}

// HTTPClient returns a client that sends tok as a bearer token on every
// request. A nil tok yields an unauthenticated client.
func HTTPClient(ctx context.Context, tok *oauth2.Token, timeout time.Duration) *http.Client {
	if tok == nil {
		return &http.Client{Timeout: timeout}
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	hc.Timeout = timeout
	return hc
}
