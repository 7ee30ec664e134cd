package domain

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/tiagofoil/valuerank/internal/observability"
)

const rankingCacheTTL = 5 * time.Minute

// RankingService orchestrates one ranking request: fetch rows, score
// every model, filter to the requested category, sort and assign ranks.
// Each request is a stateless single pass; nothing is shared between
// requests.
type RankingService struct {
	source ModelSource
	cache  RankingCache
}

// NewRankingService creates a new ranking service (DI constructor).
// The cache may be nil, in which case every request recomputes.
func NewRankingService(source ModelSource, cache RankingCache) *RankingService {
	return &RankingService{
		source: source,
		cache:  cache,
	}
}

// Rank returns the ordered, ranked model list for a category and mode.
// A total repository outage yields an empty list with the Degraded flag
// set, never an error that would take the dashboard down.
func (s *RankingService) Rank(ctx context.Context, category Category, mode Mode) (*Ranking, error) {
	if s.source == nil {
		return nil, errors.New("model source cannot be nil")
	}

	logger := observability.FromContext(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, category, mode)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			logger.Warn("ranking cache get failed, recomputing", observability.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	result, err := s.source.FetchModels(ctx, category)
	if err != nil {
		// All tiers exhausted; serve an empty list with a diagnostic
		// flag rather than failing the request.
		logger.Error("all repository tiers failed", observability.Error(err))
		return &Ranking{
			Models:    []RankedModel{},
			Total:     0,
			Source:    SourceFallback,
			UpdatedAt: time.Now().UTC(),
			Degraded:  true,
		}, nil
	}

	ranked := rankModels(result.Models, category, mode)

	ranking := &Ranking{
		Models:    ranked,
		Total:     len(ranked),
		Source:    result.Source,
		UpdatedAt: time.Now().UTC(),
	}

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, category, mode, ranking, rankingCacheTTL); setErr != nil {
			logger.Warn("failed to store ranking in cache", observability.Error(setErr))
		}
	}

	logger.Info("ranking computed",
		observability.String("category", string(category)),
		observability.String("mode", string(mode)),
		observability.Int("total", ranking.Total),
		observability.String("source", ranking.Source),
	)

	return ranking, nil
}

// rankModels scores, filters, sorts and ranks in one pass over the
// fetched rows. The sort is stable so ties keep their input order and
// re-running the same query against unchanged data reproduces the
// exact rank order.
func rankModels(models []Model, category Category, mode Mode) []RankedModel {
	ranked := make([]RankedModel, 0, len(models))

	for _, m := range models {
		monthly := MonthlyCost(m.Pricing)
		if !category.Contains(monthly) {
			continue
		}

		perf, incomplete := PerformanceScore(m.Benchmarks)
		value := PriceValue(monthly)

		ranked = append(ranked, RankedModel{
			Model:               m,
			MonthlyCost:         monthly,
			PerformanceScore:    perf,
			ValueScore:          sortScore(category, mode, perf, value),
			Category:            string(category),
			BenchmarkIncomplete: incomplete,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValueScore > ranked[j].ValueScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// sortScore picks the figure a category orders by. Price buckets rank
// by the price-only value score; free and unlimited rank by raw
// performance; the default view ranks by the mode's scoring variant.
func sortScore(category Category, mode Mode, performance, priceValue float64) float64 {
	if category.sortsByPerformance() {
		return performance
	}

	if category == CategoryDefault {
		switch mode {
		case ModeCostSavings:
			return priceValue
		case ModeBestPerformance:
			return performance
		default:
			return BlendedScore(performance, priceValue)
		}
	}

	return priceValue
}
