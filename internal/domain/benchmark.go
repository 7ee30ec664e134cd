package domain

// Fixed metric weights, summing to 1.0.
const (
	weightSWEBench     = 0.40
	weightIntelligence = 0.25
	weightArenaELO     = 0.15
	weightAgentic      = 0.10
	weightBFCL         = 0.05
	weightAider        = 0.05
)

// ELO rescale parameters: (elo - 1200) / 13 maps the ~1200-2500 band
// onto roughly 0-100, comparable to the other metrics. Values below
// 1200 go negative and are deliberately not clamped; they signal
// genuinely below-baseline performance.
const (
	eloBaseline = 1200.0
	eloDivisor  = 13.0
)

// metricCount is the number of recognized benchmark metrics.
const metricCount = 6

// PerformanceScore aggregates whatever subset of the benchmark set is
// present into a single 0-100-ish figure (unbounded above).
//
// Each present metric contributes weight x value. When fewer than all
// six metrics are known, the sum is rescaled by 6/present so that
// sparse benchmark coverage is compensated rather than silently
// penalized. With no metrics at all the score is 0 and the model is
// reported as benchmark-incomplete for display; it is never excluded.
func PerformanceScore(b BenchmarkSet) (score float64, incomplete bool) {
	var sum float64
	var present int

	add := func(v *float64, weight float64) {
		if v == nil {
			return
		}
		sum += weight * *v
		present++
	}

	add(b.SWEBench, weightSWEBench)
	add(b.Intelligence, weightIntelligence)
	if b.ArenaELO != nil {
		norm := (*b.ArenaELO - eloBaseline) / eloDivisor
		sum += weightArenaELO * norm
		present++
	}
	add(b.Agentic, weightAgentic)
	add(b.BFCL, weightBFCL)
	add(b.Aider, weightAider)

	if present == 0 {
		return 0, true
	}

	return sum * float64(metricCount) / float64(present), false
}
