package domain

import "time"

// Model is the canonical record for a single LLM offering.
// Identity fields are immutable once created; pricing and benchmark
// fields change over time as seed, scraper and admin writes land.
type Model struct {
	ID            string       `json:"id"` // vendor/slug form, e.g. "openai/gpt-5"
	Name          string       `json:"name"`
	Provider      string       `json:"provider"`
	ContextLength int          `json:"context_length"`
	Pricing       Pricing      `json:"pricing"`
	Benchmarks    BenchmarkSet `json:"benchmarks"`
	FreeTier      *FreeTier    `json:"free_tier,omitempty"`
	Source        string       `json:"source,omitempty"` // provenance: seed, scraper, manual
}

// Pricing holds per-token prices in USD per 1,000,000 tokens.
// Both fields are always present; unknown prices default to 0 and are
// never negative.
type Pricing struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
}

// BenchmarkSet maps the recognized benchmark metrics to optional values.
// A nil field means the metric has not been measured yet; it is never
// coerced to zero for scoring.
type BenchmarkSet struct {
	SWEBench     *float64 `json:"swe_bench,omitempty"`    // 0-100, % resolved issues
	Intelligence *float64 `json:"intelligence,omitempty"` // 0-100 index
	ArenaELO     *float64 `json:"arena_elo,omitempty"`    // typically 1000-1600
	Agentic      *float64 `json:"agentic,omitempty"`      // 0-100
	BFCL         *float64 `json:"bfcl,omitempty"`         // 0-100
	Aider        *float64 `json:"aider,omitempty"`        // 0-100 %
}

// FreeTier describes how a model can be used without payment.
type FreeTier struct {
	Type         string `json:"type"` // local or api
	Provider     string `json:"provider,omitempty"`
	Limitations  string `json:"limitations,omitempty"`
	URL          string `json:"url,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// RankedModel is the ranking output unit. Created fresh per request,
// never persisted. Rank is 1-based and local to the requested category.
type RankedModel struct {
	Model               Model   `json:"model"`
	MonthlyCost         float64 `json:"monthly_cost"`
	PerformanceScore    float64 `json:"performance_score"`
	ValueScore          float64 `json:"value_score"`
	Category            string  `json:"category"`
	Rank                int     `json:"rank"`
	BenchmarkIncomplete bool    `json:"benchmark_incomplete,omitempty"`
}

// Ranking is the full response for one (category, mode) request.
type Ranking struct {
	Models    []RankedModel `json:"models"`
	Total     int           `json:"total"`
	Source    string        `json:"source"` // database or fallback
	UpdatedAt time.Time     `json:"updated_at"`
	Degraded  bool          `json:"degraded,omitempty"` // all repository tiers failed
}
