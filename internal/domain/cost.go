package domain

// Assumed monthly workload, in millions of tokens. This fixed basis is
// what makes unlike per-token price structures comparable: every model
// is costed as if it served 1M input and 500K output tokens per month.
const (
	monthlyPromptMTokens     = 1.0
	monthlyCompletionMTokens = 0.5
)

// MonthlyCost estimates the USD cost of running the model for a month
// under the assumed workload. It is exactly 0 only when both prices are
// 0, which is how free offerings are detected.
func MonthlyCost(p Pricing) float64 {
	return p.Prompt*monthlyPromptMTokens + p.Completion*monthlyCompletionMTokens
}
