// Package server is an in-memory reference implementation of the REST
// surface the client consumes. It backs `icicle serve` and end-to-end tests.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Tiliavir/icicle-admin/internal/auth"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

const (
	tokenTTL           = 24 * time.Hour
	rememberMeTokenTTL = 30 * 24 * time.Hour
)

// Account is a login the reference server accepts.
type Account struct {
	User     model.User
	Password string
}

// DefaultAccounts are the development logins.
var DefaultAccounts = []Account{
	{User: model.User{ID: 1, Login: "admin"}, Password: "admin"},
	{User: model.User{ID: 2, Login: "user"}, Password: "user"},
}

// Handler serves the time-entry, user and authenticate endpoints.
type Handler struct {
	Store    *Store
	Secret   []byte
	accounts map[string]Account
	now      func() time.Time
}

// NewHandler creates a Handler with an empty store holding accounts' users.
func NewHandler(secret []byte, accounts []Account) *Handler {
	users := make([]model.User, 0, len(accounts))
	byLogin := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		users = append(users, a.User)
		byLogin[a.User.Login] = a
	}
	return &Handler{
		Store:    NewStore(users),
		Secret:   secret,
		accounts: byLogin,
		now:      time.Now,
	}
}

// Authenticate handles POST /api/authenticate.
func (h *Handler) Authenticate(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abortProblem(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	acc, ok := h.accounts[creds.Username]
	if !ok || acc.Password != creds.Password {
		abortProblem(c, http.StatusUnauthorized, "Unauthorized", "error.http.401")
		return
	}

	ttl := tokenTTL
	if creds.RememberMe {
		ttl = rememberMeTokenTTL
	}
	now := h.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   acc.User.Login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := tok.SignedString(h.Secret)
	if err != nil {
		abortProblem(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	c.Header("Authorization", "Bearer "+signed)
	c.JSON(http.StatusOK, gin.H{"id_token": signed})
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Users())
}
