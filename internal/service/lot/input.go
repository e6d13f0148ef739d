package lot

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// CreateInput holds the parameters for adding a lot to a draft auction.
type CreateInput struct {
	AuctionID        uuid.UUID
	Title            string
	StartingPrice    decimal.Decimal
	BidIncrementStep decimal.Decimal
	EndDate          *time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(i.Title) > 300 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}
	if !i.StartingPrice.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "starting_price", Message: "must be positive"})
	}
	if !i.BidIncrementStep.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "bid_increment_step", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ConfirmSaleInput holds the settlement of a sold lot. The hammer price and
// winner come from the auctioneer: a floor sale may settle above the online
// price or to a bidder who never led online.
type ConfirmSaleInput struct {
	LotID     uuid.UUID
	SoldPrice decimal.Decimal
	WinnerID  uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *ConfirmSaleInput) Validate() error {
	var errs []domain.FieldError

	if i.LotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lot_id", Message: "required"})
	}
	if !i.SoldPrice.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "sold_price", Message: "must be positive"})
	}
	if i.WinnerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "winner_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LotIDInput is shared by operations that only need the lot ID.
type LotIDInput struct {
	LotID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *LotIDInput) Validate() error {
	if i.LotID == uuid.Nil {
		return domain.NewValidationError("lot_id", "required")
	}
	return nil
}

// RelistInput holds the parameters for relisting an unsold lot under a new
// auction.
type RelistInput struct {
	LotID     uuid.UUID
	AuctionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *RelistInput) Validate() error {
	var errs []domain.FieldError

	if i.LotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lot_id", Message: "required"})
	}
	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// WithdrawInput holds the parameters for withdrawing a lot.
type WithdrawInput struct {
	LotID  uuid.UUID
	Reason string
}

// Validate checks all fields and collects all errors.
func (i *WithdrawInput) Validate() error {
	var errs []domain.FieldError

	if i.LotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lot_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
