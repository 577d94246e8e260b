package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

const elemBody = `{"id":123,"date":"2023-05-02","minutesWorked":82504,"taskName":"Intranet azure"}`

// recorded captures what the fake backend received.
type recorded struct {
	method      string
	path        string
	query       map[string][]string
	contentType string
	correlation string
	body        map[string]any
}

func newServer(t *testing.T, status int, header http.Header, body string) (*client.Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.contentType = r.Header.Get("Content-Type")
		rec.correlation = r.Header.Get(client.CorrelationIDHeader)
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.body))
		}
		for k, vs := range header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.WithHTTPClient(srv.Client())), rec
}

func TestFindAdaptsDate(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, elemBody)

	res, err := c.Find(context.Background(), 123)
	require.NoError(t, err)
	require.NotNil(t, res.Body)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/time-entries/123", rec.path)
	assert.NotEmpty(t, rec.correlation)

	got := res.Body
	assert.Equal(t, int64(123), got.ID)
	require.NotNil(t, got.Date)
	assert.True(t, got.Date.Equal(time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 82504, *got.MinutesWorked)
	assert.Equal(t, "Intranet azure", *got.TaskName)
}

func TestFindEmptyBody(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, nil, "")

	res, err := c.Find(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, res.Body)
	assert.True(t, res.OK())
}

func TestFindNotFound(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, nil, `{"title":"Not Found"}`)

	_, err := c.Find(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.Body, "Not Found")
}

func TestCreate(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, nil, elemBody)

	res, err := c.Create(context.Background(), model.SampleWithNewData)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/time-entries", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.NotContains(t, rec.body, "id")
	assert.Equal(t, "2023-05-02", rec.body["date"])
	assert.Equal(t, "Kansas", rec.body["taskName"])

	require.NotNil(t, res.Body)
	assert.Equal(t, int64(123), res.Body.ID)
}

func TestUpdate(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, elemBody)

	res, err := c.Update(context.Background(), model.SampleWithRequiredData)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/time-entries/3305", rec.path)
	assert.Equal(t, float64(3305), rec.body["id"])
	assert.Equal(t, "2023-05-02", rec.body["date"])
	require.NotNil(t, res.Body)
	assert.Equal(t, "Intranet azure", *res.Body.TaskName)
}

func TestPartialUpdate(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, elemBody)

	patch := model.TimeEntry{ID: 123, TaskName: model.Ptr("renamed")}
	_, err := c.PartialUpdate(context.Background(), patch)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/time-entries/123", rec.path)
	assert.Equal(t, "application/merge-patch+json", rec.contentType)
	assert.Equal(t, map[string]any{"id": float64(123), "date": nil, "taskName": "renamed"}, rec.body)
}

func TestUpdateWithoutIDIsRejected(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, elemBody)

	_, err := c.Update(context.Background(), model.TimeEntry{TaskName: model.Ptr("x")})
	assert.ErrorIs(t, err, client.ErrMissingID)
	_, err = c.PartialUpdate(context.Background(), model.TimeEntry{})
	assert.ErrorIs(t, err, client.ErrMissingID)
	assert.Empty(t, rec.method, "no request should have been sent")
}

func TestQuery(t *testing.T) {
	header := http.Header{}
	header.Set("X-Total-Count", "42")
	header.Set("Link", `<http://h/api/time-entries?page=1&size=20>; rel="next",<http://h/api/time-entries?page=2&size=20>; rel="last",<http://h/api/time-entries?page=0&size=20>; rel="first"`)
	c, rec := newServer(t, http.StatusOK, header, "["+elemBody+"]")

	page, size := 0, 20
	res, err := c.Query(context.Background(), client.QueryOptions{
		Page: &page,
		Size: &size,
		Sort: []client.Sort{{Field: "date", Direction: client.Desc}, {Field: "id", Direction: client.Asc}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"0"}, rec.query["page"])
	assert.Equal(t, []string{"20"}, rec.query["size"])
	assert.Equal(t, []string{"date,desc", "id,asc"}, rec.query["sort"])

	require.Len(t, res.Body, 1)
	assert.Equal(t, int64(123), res.Body[0].ID)
	assert.Equal(t, "2023-05-02", res.Body[0].Date.Format("2006-01-02"))

	total, ok := res.TotalCount()
	assert.True(t, ok)
	assert.Equal(t, 42, total)
	assert.Equal(t, "42", res.Header.Get("X-Total-Count"))

	links, err := res.Links()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"next": 1, "last": 2, "first": 0}, links)
}

func TestQueryWithoutOptions(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, "[]")

	res, err := c.Query(context.Background(), client.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, rec.query)
	assert.Empty(t, res.Body)
	_, ok := res.TotalCount()
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c, rec := newServer(t, http.StatusNoContent, nil, "")

	res, err := c.Delete(context.Background(), 123)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/time-entries/123", rec.path)
}

func TestFailurePassesThrough(t *testing.T) {
	c, _ := newServer(t, http.StatusInternalServerError, nil, "boom")

	_, err := c.Delete(context.Background(), 1)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.False(t, errors.Is(err, client.ErrNotFound))
}

func TestUnauthorized(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, nil, "")

	_, err := c.Query(context.Background(), client.QueryOptions{})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url)
	_, err := c.Find(context.Background(), 1)
	require.Error(t, err)
	var se *client.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestQueryUsers(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, nil, `[{"id":1,"login":"admin"},{"id":2,"login":"user"}]`)

	users, err := c.QueryUsers(context.Background(), client.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/api/users", rec.path)
	assert.Equal(t, []model.User{{ID: 1, Login: "admin"}, {ID: 2, Login: "user"}}, users)
}

func TestIdentityHelpers(t *testing.T) {
	c := client.New("http://unused")

	assert.Equal(t, int64(3305), c.IdentityOf(model.SampleWithRequiredData))
	assert.True(t, c.SameIdentity(nil, nil))
	assert.False(t, c.SameIdentity(&model.TimeEntry{ID: 1}, nil))
	assert.True(t, c.SameIdentity(&model.TimeEntry{ID: 1}, &model.TimeEntry{ID: 1}))

	merged := c.MergeIfMissing([]model.TimeEntry{{ID: 1}}, &model.TimeEntry{ID: 2}, &model.TimeEntry{ID: 1})
	require.Len(t, merged, 2)
	assert.Equal(t, int64(2), merged[0].ID)

	users := c.MergeUsersIfMissing(nil, &model.User{ID: 5})
	require.Len(t, users, 1)
	assert.True(t, c.SameUser(&model.UserRef{ID: 5}, &model.UserRef{ID: 5}))
}
