package lot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Schedule moves a single DRAFT lot to SCHEDULED. The Approve cascade covers
// the common case; this path exists for lots that join an approved auction
// later (relists).
func (s *Service) Schedule(ctx context.Context, input LotIDInput) (*domain.Lot, error) {
	return s.singleTransition(ctx, input,
		domain.LotStatusScheduled, domain.AuditActionSchedule,
		domain.AuctionStatusApproved, domain.AuctionStatusOpenForBids, domain.AuctionStatusLiveAuction)
}

// OpenForBids moves a SCHEDULED lot into the biddable phase. The parent
// auction must already be taking bids.
func (s *Service) OpenForBids(ctx context.Context, input LotIDInput) (*domain.Lot, error) {
	return s.singleTransition(ctx, input,
		domain.LotStatusOpenForBids, domain.AuditActionOpen,
		domain.AuctionStatusOpenForBids, domain.AuctionStatusLiveAuction)
}

// StartLiveAuction brings a lot onto the live block.
func (s *Service) StartLiveAuction(ctx context.Context, input LotIDInput) (*domain.Lot, error) {
	return s.singleTransition(ctx, input,
		domain.LotStatusLiveAuction, domain.AuditActionStartLive,
		domain.AuctionStatusOpenForBids, domain.AuctionStatusLiveAuction)
}

// singleTransition runs a one-lot transition that requires the parent
// auction to be in one of the given statuses.
func (s *Service) singleTransition(
	ctx context.Context,
	input LotIDInput,
	to domain.LotStatus,
	action domain.AuditAction,
	parentStatuses ...domain.AuctionStatus,
) (*domain.Lot, error) {
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

	return s.transition(ctx, tenantID, input.LotID, to, action, actorID, nil,
		func(txCtx context.Context, current *domain.Lot) error {
			return s.requireParentStatus(txCtx, tenantID, current, parentStatuses...)
		}, nil)
}

// requireParentStatus loads the lot's auction and checks its phase.
func (s *Service) requireParentStatus(ctx context.Context, tenantID uuid.UUID, lot *domain.Lot, statuses ...domain.AuctionStatus) error {
	parent, err := s.auctions.GetByID(ctx, tenantID, lot.AuctionID)
	if err != nil {
		return fmt.Errorf("get auction: %w", err)
	}
	for _, st := range statuses {
		if parent.Status == st {
			return nil
		}
	}
	return fmt.Errorf("auction %s is %s: %w", parent.ID, parent.Status, domain.ErrConflict)
}
