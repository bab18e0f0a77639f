package service

import (
	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
)

// AvailableStock is what a sale at loc may draw from feed. The location
// counter is authoritative; the legacy aggregate is consulted only when
// both counters read zero.
func AvailableStock(feed *entity.Feed, loc enum.StorageLocation) (available int, legacy bool) {
	if feed.ShopStock == 0 && feed.GodownStock == 0 {
		return feed.Stock, true
	}
	if loc.IsShop() {
		return feed.ShopStock, false
	}
	return feed.GodownStock, false
}

// PlanDebit turns a sale line into the movement the repository applies
func PlanDebit(feed *entity.Feed, loc enum.StorageLocation, qty int) repository.StockMovement {
	_, legacy := AvailableStock(feed, loc)
	return repository.StockMovement{
		FeedID:     feed.ID,
		Location:   loc,
		Quantity:   qty,
		LegacyOnly: legacy,
	}
}

// LegacyTaken is how much a debit of qty removes from a legacy aggregate
// holding have bags
func LegacyTaken(have, qty int) int {
	return max(min(have, qty), 0)
}

// stockKey identifies the counter a line draws on
type stockKey struct {
	feedID uuid.UUID
	column string
}

// stockDemand accumulates quantities per counter so that several lines on
// the same feed and location are checked against their combined total.
type stockDemand map[stockKey]int

func demandKey(feed *entity.Feed, loc enum.StorageLocation) stockKey {
	_, legacy := AvailableStock(feed, loc)
	switch {
	case legacy:
		return stockKey{feedID: feed.ID, column: "stock"}
	case loc.IsShop():
		return stockKey{feedID: feed.ID, column: "shop_stock"}
	default:
		return stockKey{feedID: feed.ID, column: "godown_stock"}
	}
}

// Add records qty against the counter and returns the running total
func (d stockDemand) Add(feed *entity.Feed, loc enum.StorageLocation, qty int) int {
	k := demandKey(feed, loc)
	d[k] += qty
	return d[k]
}
