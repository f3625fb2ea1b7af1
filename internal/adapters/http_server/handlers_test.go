package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewpulse/internal/app"
	"reviewpulse/internal/domain"
)

type stubSource struct {
	rows []domain.RawRow
	err  error
}

func (s *stubSource) Fetch(ctx context.Context) ([]domain.RawRow, error) { return s.rows, s.err }

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (nopCache) Del(ctx context.Context, key string) error { return nil }

func newTestServer(src domain.RecordSource) *Server {
	s := New()
	q := app.NewQueryService(src, nopCache{}, time.Minute)
	s.MountHandlers(&Handlers{Q: q})
	return s
}

func TestSearchReviews_ETagRoundTrip(t *testing.T) {
	src := &stubSource{rows: []domain.RawRow{
		{domain.ColID: "1", domain.ColName: "Ana", domain.ColStatus: "Pending"},
	}}
	srv := newTestServer(src)

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/reviews?page=1&page_size=10", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	var page domain.ReviewsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.TotalItems != 1 || len(page.Items) != 1 {
		t.Fatalf("page: %+v", page)
	}

	// Conditional GET with the same tag short-circuits.
	req := httptest.NewRequest("GET", "/v1/reviews?page=1&page_size=10", nil)
	req.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec2, req)
	if rec2.Code != http.StatusNotModified {
		t.Fatalf("conditional status = %d", rec2.Code)
	}
}

func TestSourceFailureIsBadGateway(t *testing.T) {
	srv := newTestServer(&stubSource{err: errors.New("cos: 502")})

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/teams/metrics", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestUnknownCategoryIs404(t *testing.T) {
	srv := newTestServer(&stubSource{rows: []domain.RawRow{{domain.ColID: "1"}}})

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/insights/categories/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOverviewRejectsBadDays(t *testing.T) {
	srv := newTestServer(&stubSource{})

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/overview?days=zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
