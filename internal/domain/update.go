package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionUpdate holds the optional column updates applied together with an
// auction status transition. Nil fields are left untouched.
type AuctionUpdate struct {
	OpenDate    *time.Time
	EndDate     *time.Time
	SubmittedBy *uuid.UUID
}

// LotUpdate holds the optional column updates applied together with a lot
// status transition. Price/WinnerID are only ever set by ConfirmSale and
// Relist; the bid engine goes through ApplyBid instead.
type LotUpdate struct {
	Price    *decimal.Decimal
	WinnerID *uuid.UUID
	// AuctionID and Number move a relisted lot under a new auction.
	AuctionID *uuid.UUID
	Number    *int
	EndDate   *time.Time
	// ResetBidState zeroes bids_count and clears winner_id; used when a
	// relisted lot re-enters the schedule with a fresh bidding history.
	ResetBidState bool
}
