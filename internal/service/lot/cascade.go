package lot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Cascade operations move every eligible lot of an auction in one batch
// write. They run inside the caller's transaction context: the auction
// service invokes them between its own status check and commit, so a failed
// cascade rolls the whole transition back. The source set for each batch is
// derived from the transition table, never hard-coded wider than the graph.

// ScheduleForAuction moves the auction's DRAFT lots to SCHEDULED.
func (s *Service) ScheduleForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	return s.cascade(ctx, tenantID, auctionID,
		[]domain.LotStatus{domain.LotStatusDraft},
		domain.LotStatusScheduled, domain.AuditActionSchedule)
}

// OpenForAuction moves the auction's SCHEDULED lots to OPEN_FOR_BIDS.
func (s *Service) OpenForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	return s.cascade(ctx, tenantID, auctionID,
		[]domain.LotStatus{domain.LotStatusScheduled},
		domain.LotStatusOpenForBids, domain.AuditActionOpen)
}

// StartLiveForAuction moves the auction's OPEN_FOR_BIDS lots to LIVE_AUCTION.
func (s *Service) StartLiveForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	return s.cascade(ctx, tenantID, auctionID,
		[]domain.LotStatus{domain.LotStatusOpenForBids},
		domain.LotStatusLiveAuction, domain.AuditActionStartLive)
}

// CancelForAuction cancels every lot from which CANCELLED is reachable.
// Settled lots (SOLD, UNSOLD, CLOSED) and withdrawn lots stay untouched.
func (s *Service) CancelForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	return s.cascade(ctx, tenantID, auctionID,
		domain.LotStatusesTransitioningTo(domain.LotStatusCancelled),
		domain.LotStatusCancelled, domain.AuditActionCancel)
}

// StatusCounts reports the auction's lot-state distribution.
func (s *Service) StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error) {
	return s.lots.StatusCounts(ctx, tenantID, auctionID)
}

func (s *Service) cascade(
	ctx context.Context,
	tenantID, auctionID uuid.UUID,
	from []domain.LotStatus,
	to domain.LotStatus,
	action domain.AuditAction,
) ([]uuid.UUID, error) {
	ids, err := s.lots.CascadeStatus(ctx, tenantID, auctionID, from, to)
	if err != nil {
		return nil, fmt.Errorf("cascade lots to %s: %w", to, err)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	actorID, _ := ctxutil.ActorIDFromCtx(ctx)
	s.writeAudit(ctx, domain.AuditRecord{
		TenantID:   tenantID,
		ActorID:    actorID,
		EntityType: domain.EntityTypeAuction,
		EntityID:   auctionID,
		Action:     action,
		Metadata: map[string]any{
			"cascade":       true,
			"lot_status":    to.String(),
			"lots_affected": len(ids),
		},
	})
	return ids, nil
}
