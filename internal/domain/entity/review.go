package entity

// ReviewScratch accumulates human-readable item notes while one offer
// is evaluated, for rendering review notifications. Scoped per offer.
type ReviewScratch struct {
	InvalidItems    []string
	Overstocked     []string
	DupedItems      []string
	DupeFailedItems []string
}

func (r *ReviewScratch) AddInvalid(note string) {
	r.InvalidItems = append(r.InvalidItems, note)
}

func (r *ReviewScratch) AddOverstocked(note string) {
	r.Overstocked = append(r.Overstocked, note)
}

func (r *ReviewScratch) AddDuped(note string) {
	r.DupedItems = append(r.DupedItems, note)
}

func (r *ReviewScratch) AddDupeFailed(note string) {
	r.DupeFailedItems = append(r.DupeFailedItems, note)
}

func (r *ReviewScratch) Clear() {
	*r = ReviewScratch{}
}

func (r *ReviewScratch) IsEmpty() bool {
	return len(r.InvalidItems) == 0 &&
		len(r.Overstocked) == 0 &&
		len(r.DupedItems) == 0 &&
		len(r.DupeFailedItems) == 0
}
