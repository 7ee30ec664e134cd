package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/store/sqlite"
)

func f(v float64) *float64 {
	return &v
}

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate())
	return store
}

func testModel() domain.Model {
	return domain.Model{
		ID:            "openai/gpt-4o",
		Name:          "GPT-4o",
		Provider:      "OpenAI",
		ContextLength: 128000,
		Pricing:       domain.Pricing{Prompt: 2.50, Completion: 10.00},
		Benchmarks: domain.BenchmarkSet{
			SWEBench: f(55),
			ArenaELO: f(1330),
		},
		Source: "seed",
	}
}

func TestUpsertAndReadTiers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.UpsertModel(ctx, testModel()))

	t.Run("aggregate view serves the row", func(t *testing.T) {
		rows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		r := rows[0]
		require.Equal(t, "openai/gpt-4o", r.ID)
		require.Equal(t, "GPT-4o", r.Name)
		require.InDelta(t, 2.50, r.PromptPrice.Float64, 0.0001)
		require.True(t, r.SWEBench.Valid)
		require.InDelta(t, 55, r.SWEBench.Float64, 0.0001)
		require.False(t, r.Intelligence.Valid)
	})

	t.Run("raw join agrees with the view", func(t *testing.T) {
		viewRows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)
		joinRows, err := store.JoinedModels(ctx)
		require.NoError(t, err)
		require.Equal(t, viewRows, joinRows)
	})

	t.Run("upsert updates in place by id", func(t *testing.T) {
		m := testModel()
		m.Pricing.Prompt = 3.00
		m.Source = "manual"
		require.NoError(t, store.UpsertModel(ctx, m))

		rows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.InDelta(t, 3.00, rows[0].PromptPrice.Float64, 0.0001)
		require.Equal(t, "manual", rows[0].Source.String)
	})

	t.Run("upsert without benchmarks keeps existing values", func(t *testing.T) {
		m := testModel()
		m.Benchmarks = domain.BenchmarkSet{}
		require.NoError(t, store.UpsertModel(ctx, m))

		rows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)
		require.True(t, rows[0].SWEBench.Valid)
		require.InDelta(t, 55, rows[0].SWEBench.Float64, 0.0001)
	})
}

func TestApplyBenchmarks(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.UpsertModel(ctx, testModel()))

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		err := store.ApplyBenchmarks(ctx, "openai/gpt-4o", domain.BenchmarkSet{
			Intelligence: f(82),
			Aider:        f(71.5),
		}, "scraper")
		require.NoError(t, err)

		rows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)

		r := rows[0]
		require.InDelta(t, 82, r.Intelligence.Float64, 0.0001)
		require.InDelta(t, 71.5, r.Aider.Float64, 0.0001)
		// Untouched fields survive.
		require.InDelta(t, 55, r.SWEBench.Float64, 0.0001)
		require.InDelta(t, 1330, r.ArenaELO.Float64, 0.0001)
		require.False(t, r.Agentic.Valid)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		require.NoError(t, store.ApplyBenchmarks(ctx, "openai/gpt-4o", domain.BenchmarkSet{}, "scraper"))
	})

	t.Run("unknown model is an error", func(t *testing.T) {
		err := store.ApplyBenchmarks(ctx, "nobody/ghost", domain.BenchmarkSet{SWEBench: f(1)}, "scraper")
		require.Error(t, err)
	})
}

func TestDeactivateModel(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.UpsertModel(ctx, testModel()))

	require.NoError(t, store.DeactivateModel(ctx, "openai/gpt-4o"))

	rows, err := store.ActiveModelStats(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)

	joined, err := store.JoinedModels(ctx)
	require.NoError(t, err)
	require.Empty(t, joined)

	t.Run("upsert reactivates", func(t *testing.T) {
		require.NoError(t, store.UpsertModel(ctx, testModel()))
		rows, err := store.ActiveModelStats(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("unknown model is an error", func(t *testing.T) {
		require.Error(t, store.DeactivateModel(ctx, "nobody/ghost"))
	})
}

func TestFreeTierRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	m := testModel()
	m.ID = "local/llama"
	m.Pricing = domain.Pricing{}
	m.FreeTier = &domain.FreeTier{
		Type:        "local",
		Provider:    "Ollama",
		Limitations: "requires 24GB VRAM",
		URL:         "https://ollama.com",
	}
	require.NoError(t, store.UpsertModel(ctx, m))

	rows, err := store.ActiveModelStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	ft := rows[0].FreeTier()
	require.NotNil(t, ft)
	require.Equal(t, "local", ft.Type)
	require.Equal(t, "Ollama", ft.Provider)
	require.Equal(t, "requires 24GB VRAM", ft.Limitations)
}
