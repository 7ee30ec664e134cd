package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiagofoil/valuerank/internal/auth"
	"github.com/tiagofoil/valuerank/internal/config"
	"github.com/tiagofoil/valuerank/internal/domain"
	internalhttp "github.com/tiagofoil/valuerank/internal/http"
)

const (
	adminSecret = "admin-secret"
	cronSecret  = "cron-secret"
)

type staticSource struct {
	models []domain.Model
}

func (s *staticSource) FetchModels(_ context.Context, _ domain.Category) (domain.FetchResult, error) {
	return domain.FetchResult{Models: s.models, Source: domain.SourceDatabase}, nil
}

type recordingWriter struct {
	upserted    []domain.Model
	benchmarks  map[string]domain.BenchmarkSet
	deactivated []string
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{benchmarks: make(map[string]domain.BenchmarkSet)}
}

func (w *recordingWriter) UpsertModel(_ context.Context, m domain.Model) error {
	w.upserted = append(w.upserted, m)
	return nil
}

func (w *recordingWriter) ApplyBenchmarks(_ context.Context, modelID string, b domain.BenchmarkSet, _ string) error {
	if modelID == "nobody/ghost" {
		return errors.New("no benchmark record for model: " + modelID)
	}
	w.benchmarks[modelID] = b
	return nil
}

func (w *recordingWriter) DeactivateModel(_ context.Context, modelID string) error {
	w.deactivated = append(w.deactivated, modelID)
	return nil
}

func newTestHandler(t *testing.T, writer domain.ModelWriter) *internalhttp.Handler {
	t.Helper()

	hash, err := auth.HashSecret(adminSecret)
	require.NoError(t, err)

	verifier := auth.NewVerifier(&config.AuthConfig{
		AdminSecretHash: hash,
		CronSecret:      cronSecret,
	})

	source := &staticSource{models: []domain.Model{
		{
			ID:      "meta-llama/llama-4-maverick",
			Name:    "Llama 4 Maverick",
			Pricing: domain.Pricing{Prompt: 0.15, Completion: 0.60},
		},
		{
			ID:      "openai/gpt-4o",
			Name:    "GPT-4o",
			Pricing: domain.Pricing{Prompt: 2.50, Completion: 10.00},
		},
	}}

	rankings := domain.NewRankingService(source, nil)
	return internalhttp.NewHandler(rankings, writer, nil, verifier)
}

func TestHandleRanking(t *testing.T) {
	handler := newTestHandler(t, newRecordingWriter())

	t.Run("returns ranked models as JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/models?category=under10", nil)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var ranking domain.Ranking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranking))
		require.Equal(t, 2, ranking.Total)
		require.Equal(t, domain.SourceDatabase, ranking.Source)
		require.Equal(t, "meta-llama/llama-4-maverick", ranking.Models[0].Model.ID)
		require.Equal(t, 1, ranking.Models[0].Rank)
	})

	t.Run("unknown category and mode are defaulted, not rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/models?category=bogus&mode=turbo", nil)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var ranking domain.Ranking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranking))
		require.Equal(t, string(domain.CategoryUnder10), ranking.Models[0].Category)
	})

	t.Run("unsupported method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/models", nil)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleUpsert(t *testing.T) {
	t.Run("rejects missing and wrong credentials", func(t *testing.T) {
		handler := newTestHandler(t, newRecordingWriter())

		req := httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		handler.HandleModels(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(`{}`))
		req.Header.Set("Authorization", "Bearer wrong")
		rec = httptest.NewRecorder()
		handler.HandleModels(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("upserts a valid payload", func(t *testing.T) {
		writer := newRecordingWriter()
		handler := newTestHandler(t, writer)

		body := `{
			"name": "Mistral Medium 3.1",
			"provider": "Mistral",
			"context_length": 131072,
			"pricing": {"prompt": 0.40, "completion": 2.00},
			"benchmarks": {"swe_bench": 38.5}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, writer.upserted, 1)

		m := writer.upserted[0]
		require.Equal(t, "mistral/mistral-medium-3.1", m.ID)
		require.Equal(t, "manual", m.Source)
		require.NotNil(t, m.Benchmarks.SWEBench)
	})

	t.Run("clamps negative prices", func(t *testing.T) {
		writer := newRecordingWriter()
		handler := newTestHandler(t, writer)

		body := `{"id": "x/y", "name": "Y", "provider": "X", "pricing": {"prompt": -1, "completion": 2}}`
		req := httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Zero(t, writer.upserted[0].Pricing.Prompt)
		require.InDelta(t, 2.0, writer.upserted[0].Pricing.Completion, 0.0001)
	})

	t.Run("rejects payload without name or provider", func(t *testing.T) {
		handler := newTestHandler(t, newRecordingWriter())

		req := httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(`{"id":"a/b"}`))
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unavailable write surface", func(t *testing.T) {
		handler := newTestHandler(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/models", bytes.NewBufferString(`{"name":"A","provider":"B"}`))
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleModels(rec, req)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandleModelByID(t *testing.T) {
	writer := newRecordingWriter()
	handler := newTestHandler(t, writer)

	t.Run("soft deletes with admin credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/models/openai/gpt-4o", nil)
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleModelByID(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"openai/gpt-4o"}, writer.deactivated)
	})

	t.Run("rejects without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/models/openai/gpt-4o", nil)
		rec := httptest.NewRecorder()

		handler.HandleModelByID(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleBenchmarks(t *testing.T) {
	writer := newRecordingWriter()
	handler := newTestHandler(t, writer)

	t.Run("admin secret does not open the scraper endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/benchmarks", bytes.NewBufferString(`[]`))
		req.Header.Set("Authorization", "Bearer "+adminSecret)
		rec := httptest.NewRecorder()

		handler.HandleBenchmarks(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("applies partial updates and counts per-model failures", func(t *testing.T) {
		body := `[
			{"model_id": "openai/gpt-4o", "intelligence": 82, "arena_elo": 1330},
			{"model_id": "nobody/ghost", "swe_bench": 1}
		]`
		req := httptest.NewRequest(http.MethodPost, "/api/benchmarks", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+cronSecret)
		rec := httptest.NewRecorder()

		handler.HandleBenchmarks(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Equal(t, 1, result["updated"])
		require.Equal(t, 1, result["failed"])

		applied := writer.benchmarks["openai/gpt-4o"]
		require.NotNil(t, applied.Intelligence)
		require.InDelta(t, 82, *applied.Intelligence, 0.0001)
		require.Nil(t, applied.SWEBench)
	})
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.HandleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
