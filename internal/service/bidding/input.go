package bidding

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// PlaceBidInput holds the parameters for placing a bid.
type PlaceBidInput struct {
	LotID  uuid.UUID
	Amount decimal.Decimal
	// IdempotencyKey deduplicates retries under the CLIENT_UUID strategy.
	// Ignored under SERVER_HASH, where the engine derives the key itself.
	IdempotencyKey  *string
	ClientTimestamp *time.Time
	IPAddress       string
	UserAgent       string
}

// Validate checks all fields and collects all errors.
func (i *PlaceBidInput) Validate() error {
	var errs []domain.FieldError

	if i.LotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lot_id", Message: "required"})
	}
	if !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if i.IdempotencyKey != nil && *i.IdempotencyKey == "" {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "must not be empty when provided"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetAutoBidInput holds the parameters for registering a proxy limit.
type SetAutoBidInput struct {
	LotID     uuid.UUID
	MaxAmount decimal.Decimal
}

// Validate checks all fields and collects all errors.
func (i *SetAutoBidInput) Validate() error {
	var errs []domain.FieldError

	if i.LotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lot_id", Message: "required"})
	}
	if !i.MaxAmount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "max_amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BidResult reports the outcome of PlaceBid. Deduplicated means an earlier
// bid with the same idempotency key was returned instead of a new one.
type BidResult struct {
	BidID          uuid.UUID
	AcceptedAmount decimal.Decimal
	Deduplicated   bool
}
