package repository

import (
	"database/sql"

	"github.com/tiagofoil/valuerank/internal/domain"
	"github.com/tiagofoil/valuerank/internal/store/sqlite"
)

// toModel maps a raw database row to the canonical record. This is the
// single boundary where nullable, loosely-typed columns are resolved;
// the scoring pipeline never sees raw field names.
//
// Prices default to 0 when unknown and negatives are clamped to 0 to
// hold the pricing invariant. Absent benchmark columns stay absent;
// they are never coerced to zero.
func toModel(row sqlite.ModelRow) domain.Model {
	return domain.Model{
		ID:            row.ID,
		Name:          row.Name,
		Provider:      row.Provider,
		ContextLength: int(row.ContextLength),
		Pricing: domain.Pricing{
			Prompt:     nonNegative(row.PromptPrice),
			Completion: nonNegative(row.CompletionPrice),
		},
		Benchmarks: domain.BenchmarkSet{
			SWEBench:     optional(row.SWEBench),
			Intelligence: optional(row.Intelligence),
			ArenaELO:     optional(row.ArenaELO),
			Agentic:      optional(row.Agentic),
			BFCL:         optional(row.BFCL),
			Aider:        optional(row.Aider),
		},
		FreeTier: row.FreeTier(),
		Source:   row.Source.String,
	}
}

func nonNegative(v sql.NullFloat64) float64 {
	if !v.Valid || v.Float64 < 0 {
		return 0
	}
	return v.Float64
}

func optional(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
