package worker

import (
	"sort"
	"sync"
	"time"

	"tradebot/internal/domain/entity"
)

// ReviewItem is one offer waiting for an operator verdict.
type ReviewItem struct {
	Offer    *entity.Offer
	Decision entity.Decision
	Scratch  entity.ReviewScratch
	QueuedAt time.Time
}

// ReviewQueue holds offers the engine skipped, until an operator
// resolves them through the review API or the platform closes them.
type ReviewQueue struct {
	mu    sync.RWMutex
	items map[string]ReviewItem
}

func NewReviewQueue() *ReviewQueue {
	return &ReviewQueue{items: map[string]ReviewItem{}}
}

func (q *ReviewQueue) Add(offer *entity.Offer, decision entity.Decision, scratch entity.ReviewScratch) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items[offer.ID] = ReviewItem{
		Offer:    offer,
		Decision: decision,
		Scratch:  scratch,
		QueuedAt: time.Now(),
	}
}

// Get returns the pending item, if any.
func (q *ReviewQueue) Get(offerID string) (ReviewItem, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	item, ok := q.items[offerID]

	return item, ok
}

// List returns pending items, oldest first.
func (q *ReviewQueue) List() []ReviewItem {
	q.mu.RLock()
	defer q.mu.RUnlock()

	items := make([]ReviewItem, 0, len(q.items))
	for _, item := range q.items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].QueuedAt.Before(items[j].QueuedAt)
	})

	return items
}

// Remove drops the item; no-op when absent.
func (q *ReviewQueue) Remove(offerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.items, offerID)
}

func (q *ReviewQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return len(q.items)
}
