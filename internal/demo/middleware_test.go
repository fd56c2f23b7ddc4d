package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/api/products", handler)
	router.POST("/api/products", handler)
	router.DELETE("/api/products/1", handler)
	router.POST("/api/auth/login", handler)
	router.POST("/api/auth/logout", handler)
	return router
}

func TestNewMiddleware(t *testing.T) {
	m := NewMiddleware(true)
	if !m.IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}

	m = NewMiddleware(false)
	if m.IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware_AllowsGETRequests(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_BlocksWriteRequests(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/products"},
		{http.MethodDelete, "/api/products/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403, got %d", tc.method, tc.path, w.Code)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if response["demo_mode"] != true {
			t.Error("Expected demo_mode flag in response")
		}
	}
}

func TestMiddleware_AllowsAuthPaths(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, path := range []string{"/api/auth/login", "/api/auth/logout"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("POST %s: expected status 200, got %d", path, w.Code)
		}
	}
}

func TestMiddleware_DisabledPassesEverything(t *testing.T) {
	router := newTestRouter(NewMiddleware(false))

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
