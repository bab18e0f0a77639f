package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
)

// DuplicateDetector spots a resubmitted bill: same user, same total and the
// same multiset of (feed, quantity) lines within a short window. Price and
// location are ignored. It is a heuristic; concurrent twins can both pass.
type DuplicateDetector struct {
	billRepo repository.BillRepository
	clock    Clock
	window   time.Duration
	limit    int
}

// NewDuplicateDetector creates a detector. Non-positive values fall back to
// a 10 second window and 5 candidates.
func NewDuplicateDetector(billRepo repository.BillRepository, clock Clock, window time.Duration, limit int) *DuplicateDetector {
	if window <= 0 {
		window = 10 * time.Second
	}
	if limit <= 0 {
		limit = 5
	}
	return &DuplicateDetector{billRepo: billRepo, clock: clock, window: window, limit: limit}
}

type lineKey struct {
	feedID   uuid.UUID
	quantity int
}

// Find returns the most recent matching bill, or nil
func (d *DuplicateDetector) Find(ctx context.Context, userID uuid.UUID, total int64, items []BillItemInput) (*entity.Bill, error) {
	since := d.clock.Now().Add(-d.window)
	candidates, err := d.billRepo.FindRecentSimilar(ctx, userID, total, since, d.limit)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if sameLines(candidates[i].Items, items) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func sameLines(existing []entity.BillItem, requested []BillItemInput) bool {
	if len(existing) != len(requested) {
		return false
	}
	counts := make(map[lineKey]int, len(existing))
	for _, it := range existing {
		counts[lineKey{it.FeedID, it.Quantity}]++
	}
	for _, it := range requested {
		k := lineKey{it.FeedID, it.Quantity}
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
