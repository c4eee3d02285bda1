package entity

// keyDriftLimit is the consecutive-mismatch count past which listings
// are considered stale and need a re-sync.
const keyDriftLimit = 2

// KeyTradeState tracks whether key-only offers keep arriving against
// our actual key-trading intent. Passed into and returned from
// evaluation so the pipeline stays a function of its inputs.
// IsTrading flips on once a valid key trade passes through; the
// lifecycle reactor uses it to refresh the key listing after accept.
type KeyTradeState struct {
	IsTrading  bool
	NotSelling int
	NotBuying  int
}

func (s KeyTradeState) RecordNotSelling() KeyTradeState {
	s.NotSelling++
	return s
}

func (s KeyTradeState) RecordNotBuying() KeyTradeState {
	s.NotBuying++
	return s
}

// RecordNotTrading bumps both counters: a key-only offer arrived while
// we have no key listing at all.
func (s KeyTradeState) RecordNotTrading() KeyTradeState {
	s.NotSelling++
	s.NotBuying++
	return s
}

func (s KeyTradeState) Reset() KeyTradeState {
	s.NotSelling = 0
	s.NotBuying = 0
	return s
}

// NeedsResync reports whether consecutive mismatches exceeded the
// drift limit.
func (s KeyTradeState) NeedsResync() bool {
	return s.NotSelling > keyDriftLimit || s.NotBuying > keyDriftLimit
}
