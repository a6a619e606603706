package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type mockContactStore struct {
	mock.Mock
}

func (m *mockContactStore) Insert(ctx context.Context, contact models.Contact) (models.Contact, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(models.Contact), args.Error(1)
}

func (m *mockContactStore) ListRecent(ctx context.Context, limit int64) ([]models.Contact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockOrderStore) ListRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// memoryStore assigns IDs the way the driver does and is safe for concurrent
// use.
type memoryStore struct {
	mu       sync.Mutex
	contacts []models.Contact
	orders   []models.Order
}

func (s *memoryStore) Insert(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *memoryStore) ListRecent(context.Context, int64) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...), nil
}

type memoryContactStore struct {
	*memoryStore
}

func (s memoryContactStore) Insert(_ context.Context, contact models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact.ID = primitive.NewObjectID()
	s.contacts = append(s.contacts, contact)
	return contact, nil
}

func (s memoryContactStore) ListRecent(context.Context, int64) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contact(nil), s.contacts...), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	orders []models.Order
}

func (p *recordingPublisher) PublishOrderReceived(_ context.Context, order models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	deps.Logger = zerolog.Nop()
	if deps.Now == nil {
		deps.Now = fixedClock
	}
	return NewRouter(deps)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return serve(r, req)
}

// doForm posts form as an HTML form submission would.
func doForm(t *testing.T, r http.Handler, path string, form url.Values) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(r, req)
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, apiResponse) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}
