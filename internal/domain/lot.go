package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot is a single item up for bid within an auction.
//
// Price, BidsCount and WinnerID are owned exclusively by the bid engine and
// by ConfirmSale/MarkUnsold on the lot state machine; those code paths are
// mutually exclusive, gated by Status. Price only moves upward while the lot
// is biddable; once the status leaves the biddable set only ConfirmSale may
// overwrite it, with the hammer price.
type Lot struct {
	ID               uuid.UUID
	AuctionID        uuid.UUID
	TenantID         uuid.UUID
	Number           int
	Title            string
	Status           LotStatus
	StartingPrice    decimal.Decimal
	Price            decimal.Decimal
	BidsCount        int
	BidIncrementStep decimal.Decimal
	// EndDate is nil for lots without an individual timer.
	EndDate   *time.Time
	WinnerID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinimumNextBid returns the smallest amount the bid engine accepts:
// the starting price while there are no bids, current price plus the
// increment step afterwards.
func (l *Lot) MinimumNextBid() decimal.Decimal {
	if l.BidsCount == 0 {
		return l.StartingPrice
	}
	return l.Price.Add(l.BidIncrementStep)
}

// Snapshot returns the audit-log representation of the lot's mutable state.
func (l *Lot) Snapshot() map[string]any {
	snap := map[string]any{
		"status":     l.Status.String(),
		"price":      l.Price.String(),
		"bids_count": l.BidsCount,
	}
	if l.WinnerID != nil {
		snap["winner_id"] = l.WinnerID.String()
	}
	if l.EndDate != nil {
		snap["end_date"] = l.EndDate.UTC().Format(time.RFC3339)
	}
	return snap
}
