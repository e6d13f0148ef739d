package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidEvent is broadcast after a bid commits. Emission is fire-and-forget:
// it can never undo or fail the committed bid.
type BidEvent struct {
	TenantID      uuid.UUID       `json:"tenant_id"`
	AuctionID     uuid.UUID       `json:"auction_id"`
	LotID         uuid.UUID       `json:"lot_id"`
	BidID         uuid.UUID       `json:"bid_id"`
	BidderID      uuid.UUID       `json:"bidder_id"`
	BidderDisplay string          `json:"bidder_display"`
	Amount        decimal.Decimal `json:"amount"`
	Origin        BidOrigin       `json:"origin"`
	Timestamp     time.Time       `json:"timestamp"`
}

// SoftCloseEvent is broadcast when a late bid extends a lot's end date.
type SoftCloseEvent struct {
	TenantID         uuid.UUID `json:"tenant_id"`
	AuctionID        uuid.UUID `json:"auction_id"`
	LotID            uuid.UUID `json:"lot_id"`
	MinutesRemaining int       `json:"minutes_remaining"`
	NewEndDate       time.Time `json:"new_end_date"`
	Timestamp        time.Time `json:"timestamp"`
}
