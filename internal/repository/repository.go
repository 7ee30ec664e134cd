package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/observability"
	"github.com/tiagofoil/valuerank/internal/store/sqlite"
)

// ErrNoData indicates that every tier, including the static fallback,
// produced nothing.
var ErrNoData = errors.New("no model data available from any tier")

const defaultTierTimeout = 3 * time.Second

// Store is the database surface the repository reads through. Both
// methods are idempotent reads; an in-flight call may complete after
// caller cancellation and simply have its result discarded.
type Store interface {
	// ActiveModelStats reads the precomputed aggregate view.
	ActiveModelStats(ctx context.Context) ([]sqlite.ModelRow, error)

	// JoinedModels computes the same shape with a raw join.
	JoinedModels(ctx context.Context) ([]sqlite.ModelRow, error)
}

// Repository resolves the model catalog with graceful degradation:
// primary aggregate view, then raw join, then an injected static
// snapshot. Database failures are logged and swallowed so the
// dashboard stays available; only total exhaustion surfaces an error.
type Repository struct {
	store       Store
	fallback    []domain.Model
	tierTimeout time.Duration
}

// Option configures a Repository.
type Option func(*Repository)

// WithTierTimeout caps how long each database tier may take. The
// worst-case fetch latency is the sum of the per-tier timeouts.
func WithTierTimeout(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.tierTimeout = d
		}
	}
}

// New creates a repository. store may be nil (database unreachable at
// startup), in which case every fetch serves the fallback snapshot.
func New(store Store, fallback []domain.Model, opts ...Option) *Repository {
	r := &Repository{
		store:       store,
		fallback:    fallback,
		tierTimeout: defaultTierTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchModels returns the active model catalog and which tier served
// it. The category only annotates logging here: bucket membership is
// derived from monthly cost, so filtering is centralized downstream and
// every tier returns the full active set.
func (r *Repository) FetchModels(ctx context.Context, category domain.Category) (domain.FetchResult, error) {
	ctx = observability.WithCategory(ctx, string(category))
	logger := observability.FromContext(ctx)

	if r.store != nil {
		if models, ok := r.fetchTier(ctx, "primary", r.store.ActiveModelStats); ok {
			return domain.FetchResult{Models: models, Source: domain.SourceDatabase}, nil
		}
		if models, ok := r.fetchTier(ctx, "secondary", r.store.JoinedModels); ok {
			return domain.FetchResult{Models: models, Source: domain.SourceDatabase}, nil
		}
	}

	if len(r.fallback) == 0 {
		return domain.FetchResult{}, ErrNoData
	}

	logger.Warn("serving static fallback snapshot",
		observability.Int("models", len(r.fallback)))

	// Copy so callers can never mutate the snapshot.
	models := make([]domain.Model, len(r.fallback))
	copy(models, r.fallback)

	return domain.FetchResult{Models: models, Source: domain.SourceFallback}, nil
}

// fetchTier runs one database tier under its timeout. Errors and empty
// results both report !ok so the caller falls through to the next tier.
func (r *Repository) fetchTier(
	ctx context.Context,
	tier string,
	query func(context.Context) ([]sqlite.ModelRow, error),
) ([]domain.Model, bool) {
	logger := observability.FromContext(ctx)

	tierCtx, cancel := context.WithTimeout(ctx, r.tierTimeout)
	defer cancel()

	rows, err := query(tierCtx)
	if err != nil {
		logger.Warn("repository tier failed",
			observability.String("tier", tier),
			observability.Error(err))
		return nil, false
	}
	if len(rows) == 0 {
		logger.Warn("repository tier returned no rows",
			observability.String("tier", tier))
		return nil, false
	}

	models := make([]domain.Model, 0, len(rows))
	for _, row := range rows {
		models = append(models, toModel(row))
	}
	return models, true
}
