package domain

import (
	"time"

	"github.com/google/uuid"
)

// Auction is the root entity of the bidding lifecycle. Its status is never
// assigned directly; it only changes through validated transitions starting
// from DRAFT.
type Auction struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Title       string
	Description string
	Status      AuctionStatus
	OpenDate    *time.Time
	EndDate     *time.Time
	// SubmittedBy records who sent the auction for validation.
	// Approve rejects the same actor (self-approval is forbidden).
	SubmittedBy *uuid.UUID
	LotsCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot returns the audit-log representation of the auction's mutable state.
func (a *Auction) Snapshot() map[string]any {
	snap := map[string]any{
		"status":     a.Status.String(),
		"lots_count": a.LotsCount,
	}
	if a.OpenDate != nil {
		snap["open_date"] = a.OpenDate.UTC().Format(time.RFC3339)
	}
	if a.EndDate != nil {
		snap["end_date"] = a.EndDate.UTC().Format(time.RFC3339)
	}
	return snap
}
