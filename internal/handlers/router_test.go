package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentSubmissionsAreAllStored(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(Dependencies{
		Contacts: memoryContactStore{store},
		Orders:   store,
	})

	const n = 40
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			w, _ := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
				"name":  gofakeit.Name(),
				"email": gofakeit.Email(),
				"phone": gofakeit.Phone(),
				"items": []interface{}{map[string]interface{}{"name": "Espresso", "price": 3, "quantity": i%3 + 1}},
			})
			if w.Code != http.StatusCreated {
				return fmt.Errorf("order %d: status %d", i, w.Code)
			}

			w, _ = doJSON(t, r, http.MethodPost, "/api/contact", map[string]interface{}{
				"name":    gofakeit.Name(),
				"email":   gofakeit.Email(),
				"message": gofakeit.Sentence(5),
			})
			if w.Code != http.StatusCreated {
				return fmt.Errorf("contact %d: status %d", i, w.Code)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	orderIDs := make(map[primitive.ObjectID]struct{}, n)
	for _, o := range store.orders {
		orderIDs[o.ID] = struct{}{}
	}
	assert.Len(t, orderIDs, n)

	contactIDs := make(map[primitive.ObjectID]struct{}, n)
	for _, c := range store.contacts {
		contactIDs[c.ID] = struct{}{}
	}
	assert.Len(t, contactIDs, n)
}

func TestFrontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shop</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("console.log(1)"), 0o644))

	secret := filepath.Join(filepath.Dir(dir), "outside.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0o644))
	t.Cleanup(func() { _ = os.Remove(secret) })

	r := newTestRouter(Dependencies{PublicDir: dir})

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{name: "root", method: http.MethodGet, path: "/", status: http.StatusOK, body: "<html>shop</html>"},
		{name: "asset", method: http.MethodGet, path: "/js/app.js", status: http.StatusOK, body: "console.log(1)"},
		{name: "client route", method: http.MethodGet, path: "/menu/drinks", status: http.StatusOK, body: "<html>shop</html>"},
		{name: "directory", method: http.MethodGet, path: "/js", status: http.StatusOK, body: "<html>shop</html>"},
		{name: "traversal", method: http.MethodGet, path: "/../outside.txt", status: http.StatusOK, body: "<html>shop</html>"},
		{name: "index by name", method: http.MethodGet, path: "/index.html", status: http.StatusOK, body: "<html>shop</html>"},
		{name: "head", method: http.MethodHead, path: "/js/app.js", status: http.StatusOK},
		{name: "unmatched post", method: http.MethodPost, path: "/api/unknown", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	healthy := newTestRouter(Dependencies{Ping: func(context.Context) error { return nil }})
	w, _ := doJSON(t, healthy, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := newTestRouter(Dependencies{Ping: func(context.Context) error { return errors.New("no primary") }})
	w, _ = doJSON(t, down, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListingsCanBeGuarded(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(Dependencies{
		Contacts:       memoryContactStore{store},
		Orders:         store,
		AdminJWTSecret: "s3cret",
	})

	for _, path := range []string{"/api/contacts", "/api/orders"} {
		w, _ := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w, _ := doJSON(t, r, http.MethodPost, "/api/contact", map[string]interface{}{
		"name": "Ada", "email": "ada@example.com", "message": "Hi",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(Dependencies{CORSOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFrontendWithoutIndex(t *testing.T) {
	r := newTestRouter(Dependencies{PublicDir: t.TempDir()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "<pre>")
}

func TestPublicFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	fs := gin.Dir(dir, false)

	got, ok := publicFile(fs, "/style.css")
	assert.True(t, ok)
	assert.Equal(t, "/style.css", got)

	got, ok = publicFile(fs, "/img/../style.css")
	assert.True(t, ok)
	assert.Equal(t, "/style.css", got)

	for _, p := range []string{"/", "", "/img", "/missing.css", "/../../etc/passwd"} {
		_, ok := publicFile(fs, p)
		assert.False(t, ok, p)
	}
}
