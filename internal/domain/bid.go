package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid is one accepted (or voided) bid against a lot. CreatedAt is the server
// timestamp and defines the total order of amounts for a lot: ordered by it,
// active bid amounts are monotonically non-decreasing.
type Bid struct {
	ID        uuid.UUID
	LotID     uuid.UUID
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	TenantID  uuid.UUID
	Amount    decimal.Decimal
	Origin    BidOrigin
	Status    BidStatus
	// IdempotencyKey deduplicates network retries; unique per lot among
	// non-voided bids.
	IdempotencyKey  *string
	ClientTimestamp *time.Time
	IPAddress       string
	UserAgent       string
	CreatedAt       time.Time
}

// AutoBid is a standing proxy limit: the engine bids on the user's behalf up
// to MaxAmount as others outbid them.
type AutoBid struct {
	ID        uuid.UUID
	LotID     uuid.UUID
	UserID    uuid.UUID
	TenantID  uuid.UUID
	MaxAmount decimal.Decimal
	Active    bool
	CreatedAt time.Time
}
