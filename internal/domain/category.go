package domain

// Category is a price/performance bucket for filtered, independently
// sorted ranking views.
type Category string

const (
	CategoryFree      Category = "free"
	CategoryUnder10   Category = "under10"
	Category10To20    Category = "10to20"
	CategoryUnder50   Category = "under50"
	CategoryUnlimited Category = "unlimited"
	CategoryDefault   Category = "default"
)

// Mode selects the scoring variant for the default (balanced) view.
type Mode string

const (
	ModeCostSavings     Mode = "cost-savings"
	ModeIntermediate    Mode = "intermediate"
	ModeBestPerformance Mode = "best-performance"
)

// ParseCategory maps a request string to a category. Unrecognized
// values fall back to under10 rather than being rejected, so stale
// client links keep working.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryFree, CategoryUnder10, Category10To20, CategoryUnder50, CategoryUnlimited, CategoryDefault:
		return Category(s)
	}
	return CategoryUnder10
}

// ParseMode maps a request string to a mode, defaulting to intermediate.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeCostSavings, ModeIntermediate, ModeBestPerformance:
		return Mode(s)
	}
	return ModeIntermediate
}

// Contains reports whether a model with the given monthly cost belongs
// to the category.
//
// The 10to20 bucket is inclusive on both ends while under10 is strictly
// below 10 and under50 strictly above 20, so a model costing exactly
// $10 or $20 per month appears in two adjacent buckets. That overlap is
// expected behavior, not a defect.
func (c Category) Contains(monthlyCost float64) bool {
	switch c {
	case CategoryFree:
		return monthlyCost == 0
	case CategoryUnder10:
		return monthlyCost > 0 && monthlyCost < 10
	case Category10To20:
		return monthlyCost >= 10 && monthlyCost <= 20
	case CategoryUnder50:
		return monthlyCost > 20 && monthlyCost < 50
	case CategoryUnlimited, CategoryDefault:
		return true
	}
	return false
}

// sortsByPerformance reports whether the category orders models by raw
// performance instead of a value score. The unlimited view exists to
// surface the strongest model regardless of cost; the free view has no
// price signal to rank by.
func (c Category) sortsByPerformance() bool {
	return c == CategoryFree || c == CategoryUnlimited
}
