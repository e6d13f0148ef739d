package auction

import (
	"context"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Suspend pauses a bidding-phase auction. Lots keep their statuses; the bid
// engine rejects bids because the parent is no longer open.
func (s *Service) Suspend(ctx context.Context, input SuspendInput) (*domain.Auction, error) {
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

	return s.transition(ctx, tenantID, input.AuctionID,
		domain.AuctionStatusSuspended, domain.AuditActionSuspend,
		actorID,
		map[string]any{"reason": input.Reason},
		nil, nil)
}

// Resume returns a suspended auction to the bidding state named by the input.
func (s *Service) Resume(ctx context.Context, input ResumeInput) (*domain.Auction, error) {
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

	return s.transition(ctx, tenantID, input.AuctionID,
		input.To, domain.AuditActionResume,
		actorID, nil, nil, nil)
}

// ReturnToValidation sends an approved auction back for another review pass.
func (s *Service) ReturnToValidation(ctx context.Context, input AuctionIDInput) (*domain.Auction, error) {
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

	return s.transition(ctx, tenantID, input.AuctionID,
		domain.AuctionStatusPendingValidation, domain.AuditActionReturn,
		actorID, nil,
		func(current *domain.Auction) error {
			// Only pre-open auctions can go back; the graph already blocks
			// the rest, this guards the DRAFT→PENDING path from reuse here.
			if current.Status != domain.AuctionStatusApproved {
				return domain.NewAuctionTransitionError(current.Status, domain.AuctionStatusPendingValidation)
			}
			return nil
		}, nil)
}
