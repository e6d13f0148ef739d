package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Open starts online bidding: APPROVED → OPEN_FOR_BIDS, with every SCHEDULED
// lot following in the same transaction.
func (s *Service) Open(ctx context.Context, input AuctionIDInput) (*domain.Auction, error) {
	return s.cascadingTransition(ctx, input,
		domain.AuctionStatusOpenForBids, domain.AuditActionOpen,
		s.lots.OpenForAuction)
}

// StartLive switches an open auction to the live phase, moving its biddable
// lots along.
func (s *Service) StartLive(ctx context.Context, input AuctionIDInput) (*domain.Auction, error) {
	return s.cascadingTransition(ctx, input,
		domain.AuctionStatusLiveAuction, domain.AuditActionStartLive,
		s.lots.StartLiveForAuction)
}

func (s *Service) cascadingTransition(
	ctx context.Context,
	input AuctionIDInput,
	to domain.AuctionStatus,
	action domain.AuditAction,
	cascade func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error),
) (*domain.Auction, error) {
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

	var affected []uuid.UUID

	updated, err := s.transition(ctx, tenantID, input.AuctionID,
		to, action, actorID, nil, nil,
		func(txCtx context.Context, _ *domain.Auction) (domain.AuctionUpdate, error) {
			ids, err := cascade(txCtx, tenantID, input.AuctionID)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("cascade lots: %w", err)
			}
			affected = ids
			return domain.AuctionUpdate{}, nil
		})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "auction lots cascaded",
		"auction_id", input.AuctionID,
		"to", to,
		"lots_affected", len(affected))
	return updated, nil
}
