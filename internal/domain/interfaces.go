package domain

import (
	"context"
	"time"
)

// Data source labels reported to callers so operators can detect
// degraded mode.
const (
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// FetchResult is the outcome of one repository read.
type FetchResult struct {
	Models []Model
	Source string // SourceDatabase or SourceFallback
}

// ModelSource provides read access to the model catalog. FetchModels
// never fails for "no data": it degrades through its tiers and returns
// an empty result only when every tier is exhausted.
type ModelSource interface {
	FetchModels(ctx context.Context, category Category) (FetchResult, error)
}

// RankingCache caches computed rankings keyed by (category, mode).
// Implementations must invalidate on any model or benchmark write.
type RankingCache interface {
	Get(ctx context.Context, category Category, mode Mode) (*Ranking, error)
	Set(ctx context.Context, category Category, mode Mode, ranking *Ranking, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// ModelWriter is the write surface consumed by the admin screen and the
// external benchmark scraper. The ranking engine itself never writes.
type ModelWriter interface {
	// UpsertModel creates or replaces a model record keyed by its ID.
	UpsertModel(ctx context.Context, m Model) error

	// ApplyBenchmarks merges the non-nil benchmark fields into the
	// record for the given model, leaving absent fields untouched.
	ApplyBenchmarks(ctx context.Context, modelID string, b BenchmarkSet, source string) error

	// DeactivateModel soft-deletes a model from ranking views.
	DeactivateModel(ctx context.Context, modelID string) error
}
