package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tiagofoil/valuerank/internal/auth"
	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	rankings *domain.RankingService
	writer   domain.ModelWriter
	cache    domain.RankingCache
	verifier *auth.Verifier
}

// NewHandler creates a new HTTP handler (DI constructor). writer and
// cache are optional and may be nil in degraded deployments.
func NewHandler(
	rankings *domain.RankingService,
	writer domain.ModelWriter,
	cache domain.RankingCache,
	verifier *auth.Verifier,
) *Handler {
	return &Handler{
		rankings: rankings,
		writer:   writer,
		cache:    cache,
		verifier: verifier,
	}
}

// HandleModels serves the ranking read path and the admin upsert.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleRanking(w, r)
	case http.MethodPost:
		h.handleUpsert(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRanking processes a ranking query. Unrecognized category or
// mode values fall back to defaults instead of rejecting, so stale
// client links keep resolving.
func (h *Handler) handleRanking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := domain.ParseCategory(r.URL.Query().Get("category"))
	mode := domain.ParseMode(r.URL.Query().Get("mode"))

	ctx = observability.WithCategory(ctx, string(category))
	logger := observability.FromContext(ctx)

	ranking, err := h.rankings.Rank(ctx, category, mode)
	if err != nil {
		logger.Error("ranking failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ranking)
}

// handleUpsert processes an authenticated admin create/update.
func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if !h.verifier.CheckAdmin(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if h.writer == nil {
		http.Error(w, "write surface unavailable", http.StatusServiceUnavailable)
		return
	}

	var m domain.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if m.Name == "" || m.Provider == "" {
		http.Error(w, "name and provider are required", http.StatusBadRequest)
		return
	}
	if m.ID == "" {
		m.ID = slugID(m.Provider, m.Name)
	}
	if m.Source == "" {
		m.Source = "manual"
	}

	// Pricing invariant: present, never negative.
	if m.Pricing.Prompt < 0 {
		m.Pricing.Prompt = 0
	}
	if m.Pricing.Completion < 0 {
		m.Pricing.Completion = 0
	}

	ctx = observability.WithModel(ctx, m.ID)
	logger = observability.FromContext(ctx)

	if err := h.writer.UpsertModel(ctx, m); err != nil {
		logger.Error("model upsert failed", zap.Error(err))
		http.Error(w, "failed to save model", http.StatusInternalServerError)
		return
	}

	h.invalidateCache(r)
	logger.Info("model upserted", zap.String("source", m.Source))

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "id": m.ID})
}

// HandleModelByID serves the admin soft delete.
func (h *Handler) HandleModelByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.verifier.CheckAdmin(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if h.writer == nil {
		http.Error(w, "write surface unavailable", http.StatusServiceUnavailable)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/models/")
	if id == "" {
		http.Error(w, "model id required", http.StatusBadRequest)
		return
	}

	if err := h.writer.DeactivateModel(ctx, id); err != nil {
		logger.Error("model deactivation failed", zap.String("model", id), zap.Error(err))
		http.Error(w, "failed to delete model", http.StatusNotFound)
		return
	}

	h.invalidateCache(r)
	logger.Info("model deactivated", zap.String("model", id))

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// benchmarkUpdate is one scraper result row: a model id plus whatever
// subset of metrics the run managed to collect.
type benchmarkUpdate struct {
	ModelID string `json:"model_id"`
	domain.BenchmarkSet
	Source string `json:"source,omitempty"`
}

// HandleBenchmarks applies partial benchmark updates from the external
// scraper. Per-model failures are counted, not fatal: one unknown model
// id must not discard a whole scrape run.
func (h *Handler) HandleBenchmarks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.verifier.CheckCron(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if h.writer == nil {
		http.Error(w, "write surface unavailable", http.StatusServiceUnavailable)
		return
	}

	var updates []benchmarkUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	updated, failed := 0, 0
	for _, u := range updates {
		source := u.Source
		if source == "" {
			source = "scraper"
		}
		if err := h.writer.ApplyBenchmarks(ctx, u.ModelID, u.BenchmarkSet, source); err != nil {
			logger.Warn("benchmark update failed",
				zap.String("model", u.ModelID), zap.Error(err))
			failed++
			continue
		}
		updated++
	}

	if updated > 0 {
		h.invalidateCache(r)
	}

	logger.Info("benchmark updates applied",
		zap.Int("updated", updated), zap.Int("failed", failed))

	writeJSON(w, http.StatusOK, map[string]int{"updated": updated, "failed": failed})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func (h *Handler) invalidateCache(r *http.Request) {
	if h.cache == nil {
		return
	}
	ctx := r.Context()
	if err := h.cache.Invalidate(ctx); err != nil {
		observability.FromContext(ctx).Warn("cache invalidation failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status already written; nothing more to do.
		return
	}
}

func slugID(provider, name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return strings.ToLower(provider) + "/" + slug
}
