package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"reviewpulse/internal/app"
	"reviewpulse/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/overview", h.overview)
	s.mux.Get("/v1/reviews", h.searchReviews)
	s.mux.Get("/v1/reviews/recent", h.recentReviews)
	s.mux.Get("/v1/reviews/high-risk", h.highRiskReviews)
	s.mux.Get("/v1/reviews/feature-requests", h.featureRequests)
	s.mux.Get("/v1/teams", h.filterOptions)
	s.mux.Get("/v1/teams/metrics", h.teamMetrics)
	s.mux.Get("/v1/teams/resolutions", h.resolutions)
	s.mux.Get("/v1/sentiment/summary", h.sentimentSummary)
	s.mux.Get("/v1/keywords", h.keywords)
	s.mux.Get("/v1/insights/categories", h.insightCategories)
	s.mux.Get("/v1/insights/categories/{key}", h.categoryReviews)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps a query-layer failure onto the wire: an unreachable
// record source is a 502, anything else a 500.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSourceUnavailable) {
		writeProblem(w, http.StatusBadGateway, "Source Unavailable", "review table could not be fetched")
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON serves v with an ETag and honors If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// pageQuery reads page/page_size with the dashboard defaults.
func pageQuery(r *http.Request) domain.PageQuery {
	pg := domain.PageQuery{Page: 1, PageSize: 10}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pg.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			pg.PageSize = n
		}
	}
	return pg
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 3650 {
			writeProblem(w, http.StatusBadRequest, "Invalid days", "days must be an integer between 1 and 3650")
			return
		}
		days = n
	}
	since := time.Now().AddDate(0, 0, -days)
	out, err := h.Q.Overview(r.Context(), since, r.URL.Query().Get("app"), r.URL.Query().Get("platform"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) searchReviews(w http.ResponseWriter, r *http.Request) {
	q := domain.ReviewsQuery{
		Text:      r.URL.Query().Get("q"),
		App:       r.URL.Query().Get("app"),
		Platform:  r.URL.Query().Get("platform"),
		Sentiment: r.URL.Query().Get("sentiment"),
		Status:    r.URL.Query().Get("status"),
		Team:      r.URL.Query().Get("team"),
		PageQuery: pageQuery(r),
	}
	out, err := h.Q.SearchReviews(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) recentReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.RecentReviews(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) highRiskReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.HighRiskReviews(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) featureRequests(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.FeatureRequests(r.Context(), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) filterOptions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.FilterOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

// teamMetrics serves the team performance view. No team param means the
// combined "All Teams" scope.
func (h *Handlers) teamMetrics(w http.ResponseWriter, r *http.Request) {
	q := domain.TeamQuery{
		Team:     r.URL.Query().Get("team"),
		App:      r.URL.Query().Get("app"),
		Platform: r.URL.Query().Get("platform"),
	}
	out, err := h.Q.TeamDashboard(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) resolutions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Resolutions(r.Context(), r.URL.Query().Get("team"), pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) sentimentSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.SentimentOverview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) keywords(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Keywords(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) insightCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.InsightCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) categoryReviews(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	out, found, err := h.Q.CategoryReviews(r.Context(), key, pageQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown insight category")
		return
	}
	writeJSON(w, r, out)
}
