package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrPermission        = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrBidTooLow         = errors.New("bid too low")
	ErrLotClosed         = errors.New("lot not open for bids")
	ErrAuctionNotOpen    = errors.New("auction not open for bids")
	ErrConflict          = errors.New("conflict")
	// ErrTransactionFailed covers transaction timeouts and infrastructure
	// failures. Always retryable from the caller's point of view.
	ErrTransactionFailed = errors.New("transaction failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// InvalidTransitionError names both ends of a rejected status transition.
type InvalidTransitionError struct {
	Entity EntityType
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// NewAuctionTransitionError builds an InvalidTransitionError for an auction.
func NewAuctionTransitionError(from, to AuctionStatus) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: EntityTypeAuction, From: from.String(), To: to.String()}
}

// NewLotTransitionError builds an InvalidTransitionError for a lot.
func NewLotTransitionError(from, to LotStatus) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: EntityTypeLot, From: from.String(), To: to.String()}
}

// BidTooLowError carries the minimum amount the engine would have accepted.
type BidTooLowError struct {
	MinimumAcceptable decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid too low: minimum acceptable is %s", e.MinimumAcceptable)
}

func (e *BidTooLowError) Unwrap() error { return ErrBidTooLow }

// ConcurrencyConflictError signals that another bid was committed against the
// price this call read. It names the now-current price so the caller can
// retry against fresh state.
type ConcurrencyConflictError struct {
	CurrentPrice decimal.Decimal
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent bid won the race: current price is %s", e.CurrentPrice)
}

func (e *ConcurrencyConflictError) Unwrap() error { return ErrConflict }
