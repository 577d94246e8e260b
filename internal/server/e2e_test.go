package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/icicle-admin/internal/auth"
	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/logging"
	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/server"
)

func startServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := server.NewHandler([]byte("e2e-secret"), server.DefaultAccounts)
	srv := httptest.NewServer(server.NewRouter(h, logging.Nop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func loggedIn(t *testing.T, ctx context.Context, baseURL string) *client.Client {
	t.Helper()
	tok, err := auth.Authenticate(ctx, httptestClient(), baseURL, auth.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", auth.Subject(tok))
	assert.True(t, tok.Valid())
	return client.New(baseURL, client.WithHTTPClient(auth.HTTPClient(ctx, tok, 5*time.Second)))
}

func httptestClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()
	c := loggedIn(t, ctx, startServer(t))

	created, err := c.Create(ctx, model.SampleWithNewData)
	require.NoError(t, err)
	require.NotNil(t, created.Body)
	id := created.Body.ID
	assert.Positive(t, id)
	assert.Equal(t, "/api/time-entries/1", created.Header.Get("Location"))
	assert.Equal(t, "2023-05-02", created.Body.Date.Format("2006-01-02"))

	found, err := c.Find(ctx, id)
	require.NoError(t, err)
	assert.True(t, c.SameIdentity(created.Body, found.Body))
	assert.Equal(t, "Kansas", *found.Body.TaskName)

	e := *found.Body
	e.TaskName = model.Ptr("Kansas City")
	e.User = &model.UserRef{ID: 2}
	updated, err := c.Update(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "Kansas City", *updated.Body.TaskName)

	patched, err := c.PartialUpdate(ctx, model.TimeEntry{ID: id, MinutesWorked: model.Ptr(90)})
	require.NoError(t, err)
	assert.Equal(t, 90, *patched.Body.MinutesWorked)
	assert.Equal(t, "Kansas City", *patched.Body.TaskName)
	assert.Equal(t, &model.UserRef{ID: 2}, patched.Body.User)

	size := 10
	list, err := c.Query(ctx, client.QueryOptions{Size: &size, Sort: []client.Sort{{Field: "id", Direction: client.Asc}}})
	require.NoError(t, err)
	require.Len(t, list.Body, 1)
	total, ok := list.TotalCount()
	assert.True(t, ok)
	assert.Equal(t, 1, total)
	links, err := list.Links()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"last": 0, "first": 0}, links)

	users, err := c.QueryUsers(ctx, client.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	deleted, err := c.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted.OK())

	_, err = c.Find(ctx, id)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestUpdateUnknownEntryIsBadRequest(t *testing.T) {
	ctx := context.Background()
	c := loggedIn(t, ctx, startServer(t))

	_, err := c.Update(ctx, model.SampleWithRequiredData)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.StatusCode)
	assert.Contains(t, se.Body, "idnotfound")
}

func TestUnauthenticatedClient(t *testing.T) {
	ctx := context.Background()
	c := client.New(startServer(t))

	_, err := c.Query(ctx, client.QueryOptions{})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestBadCredentials(t *testing.T) {
	_, err := auth.Authenticate(context.Background(), httptestClient(), startServer(t),
		auth.Credentials{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
}
