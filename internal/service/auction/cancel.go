package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Cancel aborts an auction from any non-terminal state. Every lot that can
// still be cancelled is, and the active bids on those lots are voided —
// all within one transaction, so a failure leaves nothing half-cancelled.
func (s *Service) Cancel(ctx context.Context, input CancelInput) (*domain.Auction, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		cancelledLots []uuid.UUID
		voidedBids    int64
	)

	metadata := map[string]any{"reason": input.Reason}

	updated, err := s.transition(ctx, tenantID, input.AuctionID,
		domain.AuctionStatusCancelled, domain.AuditActionCancel,
		actorID, metadata, nil,
		func(txCtx context.Context, _ *domain.Auction) (domain.AuctionUpdate, error) {
			ids, err := s.lots.CancelForAuction(txCtx, tenantID, input.AuctionID)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("cancel lots: %w", err)
			}
			cancelledLots = ids

			voidedBids, err = s.bids.VoidActiveByLots(txCtx, tenantID, ids)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("void bids: %w", err)
			}

			metadata["lots_cancelled"] = len(ids)
			metadata["bids_voided"] = voidedBids
			return domain.AuctionUpdate{}, nil
		})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "auction cancelled",
		"auction_id", input.AuctionID,
		"lots_cancelled", len(cancelledLots),
		"bids_voided", voidedBids)
	return updated, nil
}
