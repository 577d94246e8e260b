package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/wire"
)

const (
	entityName      = "timeEntry"
	defaultPageSize = 20
	maxPageSize     = 2000
)

// CreateTimeEntry handles POST /api/time-entries.
func (h *Handler) CreateTimeEntry(c *gin.Context) {
	var r wire.RestTimeEntry
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err.Error(), "invalidbody")
		return
	}
	if r.ID != nil {
		badRequest(c, "A new timeEntry cannot already have an ID", "idexists")
		return
	}
	if missing := missingRequired(r); missing != "" {
		badRequest(c, missing+" is required", "validation")
		return
	}
	e, err := wire.FromWire(r)
	if err != nil {
		badRequest(c, err.Error(), "invaliddate")
		return
	}

	created, err := h.Store.Create(model.NewTimeEntry{
		Date:          e.Date,
		MinutesWorked: e.MinutesWorked,
		TaskName:      e.TaskName,
		User:          e.User,
	})
	if err != nil {
		badRequest(c, err.Error(), "userinvalid")
		return
	}

	id := strconv.FormatInt(created.ID, 10)
	c.Header("Location", "/api/time-entries/"+id)
	alert(c, "created", id)
	c.JSON(http.StatusCreated, wire.ToWire(created))
}

// UpdateTimeEntry handles PUT /api/time-entries/:id.
func (h *Handler) UpdateTimeEntry(c *gin.Context) {
	id, r, ok := bindWithID(c)
	if !ok {
		return
	}
	if missing := missingRequired(r); missing != "" {
		badRequest(c, missing+" is required", "validation")
		return
	}
	e, err := wire.FromWire(r)
	if err != nil {
		badRequest(c, err.Error(), "invaliddate")
		return
	}

	saved, err := h.Store.Replace(e)
	if err != nil {
		storeError(c, err)
		return
	}
	alert(c, "updated", strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, wire.ToWire(saved))
}

// PartialUpdateTimeEntry handles PATCH /api/time-entries/:id. Absent fields
// are left as stored.
func (h *Handler) PartialUpdateTimeEntry(c *gin.Context) {
	id, r, ok := bindWithID(c)
	if !ok {
		return
	}
	patch, err := wire.FromWire(r)
	if err != nil {
		badRequest(c, err.Error(), "invaliddate")
		return
	}

	saved, err := h.Store.Merge(patch)
	if err != nil {
		storeError(c, err)
		return
	}
	alert(c, "updated", strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, wire.ToWire(saved))
}

// GetTimeEntry handles GET /api/time-entries/:id.
func (h *Handler) GetTimeEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, found := h.Store.Get(id)
	if !found {
		abortProblem(c, http.StatusNotFound, "Not Found", "error.http.404")
		return
	}
	c.JSON(http.StatusOK, wire.ToWire(e))
}

// ListTimeEntries handles GET /api/time-entries?page&size&sort.
func (h *Handler) ListTimeEntries(c *gin.Context) {
	page, err := intParam(c, "page", 0)
	if err != nil || page < 0 {
		badRequest(c, "invalid page", "pageinvalid")
		return
	}
	size, err := intParam(c, "size", defaultPageSize)
	if err != nil || size <= 0 || size > maxPageSize {
		badRequest(c, "invalid size", "sizeinvalid")
		return
	}
	var sorts []client.Sort
	for _, raw := range c.QueryArray("sort") {
		s, err := client.ParseSort(raw)
		if err != nil {
			badRequest(c, err.Error(), "sortinvalid")
			return
		}
		sorts = append(sorts, s)
	}

	entries, total, err := h.Store.Page(page, size, sorts)
	if err != nil {
		badRequest(c, err.Error(), "sortinvalid")
		return
	}

	c.Header(client.TotalCountHeader, strconv.Itoa(total))
	c.Header("Link", paginationLinks(c.Request.URL, page, size, total))

	out := make([]wire.RestTimeEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, wire.ToWire(e))
	}
	c.JSON(http.StatusOK, out)
}

// DeleteTimeEntry handles DELETE /api/time-entries/:id.
func (h *Handler) DeleteTimeEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.Store.Delete(id)
	alert(c, "deleted", strconv.FormatInt(id, 10))
	c.Status(http.StatusNoContent)
}

// bindWithID decodes the body of a PUT/PATCH and checks that it names the
// same entry as the path.
func bindWithID(c *gin.Context) (int64, wire.RestTimeEntry, bool) {
	id, ok := pathID(c)
	if !ok {
		return 0, wire.RestTimeEntry{}, false
	}
	var r wire.RestTimeEntry
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err.Error(), "invalidbody")
		return 0, r, false
	}
	if r.ID == nil {
		badRequest(c, "Invalid id", "idnull")
		return 0, r, false
	}
	if *r.ID != id {
		badRequest(c, "Invalid ID", "idinvalid")
		return 0, r, false
	}
	return id, r, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid ID", "idinvalid")
		return 0, false
	}
	return id, true
}

func missingRequired(r wire.RestTimeEntry) string {
	switch {
	case r.Date == nil:
		return "date"
	case r.MinutesWorked == nil:
		return "minutesWorked"
	case r.TaskName == nil:
		return "taskName"
	}
	return ""
}

func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errEntryNotFound):
		badRequest(c, "Entity not found", "idnotfound")
	case errors.Is(err, errUnknownUser):
		badRequest(c, err.Error(), "userinvalid")
	default:
		abortProblem(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func badRequest(c *gin.Context, title, errorKey string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"title":      title,
		"status":     http.StatusBadRequest,
		"entityName": entityName,
		"errorKey":   errorKey,
		"message":    "error." + errorKey,
	})
}

func alert(c *gin.Context, action, param string) {
	c.Header("X-icicleApp-alert", fmt.Sprintf("icicleApp.%s.%s", entityName, action))
	c.Header("X-icicleApp-params", param)
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// paginationLinks builds the Link header for a page: next and prev when
// they exist, last and first always.
func paginationLinks(u *url.URL, page, size, total int) string {
	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / size
	}
	link := func(p int, rel string) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(size))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, u.Path, q.Encode(), rel)
	}

	var parts []string
	if page < lastPage {
		parts = append(parts, link(page+1, "next"))
	}
	if page > 0 {
		parts = append(parts, link(page-1, "prev"))
	}
	parts = append(parts, link(lastPage, "last"), link(0, "first"))
	return strings.Join(parts, ",")
}
