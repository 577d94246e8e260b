package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/icicle-admin/internal/logging"
)

func TestNewRouter_RoutesExist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := NewRouter(NewHandler([]byte("secret"), DefaultAccounts), logging.Nop())

	routes := router.Routes()
	expectedRoutes := map[string]string{
		"GET /health":                  "health",
		"POST /api/authenticate":       "authenticate",
		"GET /api/users":               "users",
		"POST /api/time-entries":       "create",
		"PUT /api/time-entries/:id":    "update",
		"PATCH /api/time-entries/:id":  "partial update",
		"GET /api/time-entries/:id":    "get",
		"GET /api/time-entries":        "list",
		"DELETE /api/time-entries/:id": "delete",
	}

	found := make(map[string]bool)
	for _, r := range routes {
		key := r.Method + " " + r.Path
		if _, ok := expectedRoutes[key]; ok {
			found[key] = true
		}
	}

	for key, desc := range expectedRoutes {
		if !found[key] {
			t.Errorf("missing route %s (%s)", key, desc)
		}
	}
}

func TestHealthIsPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(NewHandler([]byte("secret"), DefaultAccounts), logging.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(NewHandler([]byte("secret"), DefaultAccounts), logging.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/time-entries", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}
