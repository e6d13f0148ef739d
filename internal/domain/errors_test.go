package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewValidationError("reason", "min 10 characters")
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
}

func TestInvalidTransitionError_NamesBothEnds(t *testing.T) {
	t.Parallel()

	err := NewAuctionTransitionError(AuctionStatusClosed, AuctionStatusDraft)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("should unwrap to ErrInvalidTransition")
	}
	msg := err.Error()
	for _, part := range []string{"CLOSED", "DRAFT", "AUCTION"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q should mention %q", msg, part)
		}
	}

	lotErr := NewLotTransitionError(LotStatusSold, LotStatusOpenForBids)
	if lotErr.From != "SOLD" || lotErr.To != "OPEN_FOR_BIDS" {
		t.Errorf("unexpected endpoints: %s -> %s", lotErr.From, lotErr.To)
	}
}

func TestBidTooLowError_CarriesMinimum(t *testing.T) {
	t.Parallel()

	minimum := decimal.NewFromInt(150)
	err := &BidTooLowError{MinimumAcceptable: minimum}
	if !errors.Is(err, ErrBidTooLow) {
		t.Error("should unwrap to ErrBidTooLow")
	}

	var tooLow *BidTooLowError
	if !errors.As(error(err), &tooLow) {
		t.Fatal("errors.As should recover the typed error")
	}
	if !tooLow.MinimumAcceptable.Equal(minimum) {
		t.Errorf("minimum: got %s, want %s", tooLow.MinimumAcceptable, minimum)
	}
}

func TestConcurrencyConflictError_CarriesCurrentPrice(t *testing.T) {
	t.Parallel()

	err := &ConcurrencyConflictError{CurrentPrice: decimal.NewFromInt(999)}
	if !errors.Is(err, ErrConflict) {
		t.Error("should unwrap to ErrConflict")
	}

	var conflict *ConcurrencyConflictError
	if !errors.As(error(err), &conflict) {
		t.Fatal("errors.As should recover the typed error")
	}
	if !conflict.CurrentPrice.Equal(decimal.NewFromInt(999)) {
		t.Errorf("current price: got %s", conflict.CurrentPrice)
	}
}
