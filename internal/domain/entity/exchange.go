package entity

// SideSummary is one side's worth of an exchange, in scrap-equivalents.
// Total is a float because craft weapons substituted as currency are
// worth half a scrap each.
type SideSummary struct {
	Total    float64
	KeyCount int
	// ScrapValue is the portion contributed by pure metal.
	ScrapValue float64
	HasMetal   bool
	HasKeys    bool
	HasItems   bool
}

// ExchangeSummary is the per-offer valuation result, derived fresh for
// every evaluation and never persisted.
type ExchangeSummary struct {
	Our   SideSummary
	Their SideSummary
}

// ContainsItems reports whether either side carries non-currency items.
func (s ExchangeSummary) ContainsItems() bool {
	return s.Our.HasItems || s.Their.HasItems
}
