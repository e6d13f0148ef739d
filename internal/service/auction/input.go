package auction

import (
	"time"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// CreateInput holds the parameters for creating an auction.
type CreateInput struct {
	Title       string
	Description string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(i.Title) > 300 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitInput holds the parameters for submitting an auction for validation.
type SubmitInput struct {
	AuctionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *SubmitInput) Validate() error {
	if i.AuctionID == uuid.Nil {
		return domain.NewValidationError("auction_id", "required")
	}
	return nil
}

// ApproveInput holds the parameters for approving a submitted auction.
type ApproveInput struct {
	AuctionID uuid.UUID
	OpenDate  time.Time
	EndDate   time.Time
}

// Validate checks all fields and collects all errors.
func (i *ApproveInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if i.OpenDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "open_date", Message: "required"})
	}
	if i.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	} else if !i.OpenDate.IsZero() && !i.EndDate.After(i.OpenDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be after open_date"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RejectInput holds the parameters for rejecting a submitted auction.
type RejectInput struct {
	AuctionID uuid.UUID
	Notes     string
}

// Validate checks all fields and collects all errors.
func (i *RejectInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if len(i.Notes) < 10 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "min 10 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AuctionIDInput is shared by operations that only need the auction ID
// (Open, StartLive, ReturnToValidation, ForceClose).
type AuctionIDInput struct {
	AuctionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *AuctionIDInput) Validate() error {
	if i.AuctionID == uuid.Nil {
		return domain.NewValidationError("auction_id", "required")
	}
	return nil
}

// SuspendInput holds the parameters for suspending an auction.
type SuspendInput struct {
	AuctionID uuid.UUID
	Reason    string
}

// Validate checks all fields and collects all errors.
func (i *SuspendInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ResumeInput holds the parameters for resuming a suspended auction.
type ResumeInput struct {
	AuctionID uuid.UUID
	// To selects which bidding state the auction returns to.
	To domain.AuctionStatus
}

// Validate checks all fields and collects all errors.
func (i *ResumeInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if i.To != domain.AuctionStatusOpenForBids && i.To != domain.AuctionStatusLiveAuction {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be OPEN_FOR_BIDS or LIVE_AUCTION"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CancelInput holds the parameters for cancelling an auction.
type CancelInput struct {
	AuctionID uuid.UUID
	Reason    string
}

// Validate checks all fields and collects all errors.
func (i *CancelInput) Validate() error {
	var errs []domain.FieldError

	if i.AuctionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "auction_id", Message: "required"})
	}
	if len(i.Reason) < 10 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "min 10 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
