package bidding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// SetAutoBid registers (or raises) the caller's proxy limit on a lot. The
// engine will bid on their behalf, one increment at a time, up to the limit.
func (s *Service) SetAutoBid(ctx context.Context, input SetAutoBidInput) (*domain.AutoBid, error) {
	userID, ok := ctxutil.ActorIDFromCtx(ctx)
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

	lot, err := s.lots.GetByID(ctx, tenantID, input.LotID)
	if err != nil {
		return nil, fmt.Errorf("get lot: %w", err)
	}
	if !lot.Status.IsBiddable() {
		return nil, fmt.Errorf("lot %s is %s: %w", lot.ID, lot.Status, domain.ErrLotClosed)
	}
	if input.MaxAmount.LessThan(lot.MinimumNextBid()) {
		return nil, &domain.BidTooLowError{MinimumAcceptable: lot.MinimumNextBid()}
	}

	ab, err := s.autobids.Upsert(ctx, &domain.AutoBid{
		LotID:     input.LotID,
		UserID:    userID,
		TenantID:  tenantID,
		MaxAmount: input.MaxAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert auto bid: %w", err)
	}

	s.log.InfoContext(ctx, "auto bid registered",
		"lot_id", input.LotID,
		"max_amount", input.MaxAmount)
	return ab, nil
}

// CancelAutoBid retires a proxy limit.
func (s *Service) CancelAutoBid(ctx context.Context, autoBidID uuid.UUID) error {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return domain.ErrPermission
	}
	if autoBidID == uuid.Nil {
		return domain.NewValidationError("auto_bid_id", "required")
	}
	return s.autobids.Deactivate(ctx, tenantID, autoBidID)
}

// evaluateAutoBid runs after a committed bid. It finds the strongest standing
// proxy limit that can still top the new price (excluding the current
// leader) and synthesizes exactly one counter bid at the minimum required
// amount. One hop only: the synthesized bid does not trigger another
// evaluation, so proxy wars settle one increment per incoming bid.
func (s *Service) evaluateAutoBid(ctx context.Context, tenantID uuid.UUID, lot *domain.Lot, leaderID uuid.UUID) {
	minNext := lot.Price.Add(lot.BidIncrementStep)

	cand, err := s.autobids.BestCandidate(ctx, tenantID, lot.ID, minNext, leaderID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "auto bid lookup failed",
				"lot_id", lot.ID, "error", err)
		}
		return
	}

	result, err := s.placeBid(ctx, tenantID, cand.UserID, PlaceBidInput{
		LotID:  lot.ID,
		Amount: minNext,
	}, domain.BidOriginAutoBid, 1)
	if err != nil {
		// Lost a race or the lot closed under us; the next accepted bid
		// re-evaluates.
		s.log.InfoContext(ctx, "auto bid not placed",
			"lot_id", lot.ID,
			"user_id", cand.UserID,
			"reason", err)
		return
	}

	s.log.InfoContext(ctx, "auto bid placed",
		"lot_id", lot.ID,
		"bid_id", result.BidID,
		"user_id", cand.UserID,
		"amount", result.AcceptedAmount)

	// A limit that cannot cover the next increment is spent.
	if cand.MaxAmount.LessThan(result.AcceptedAmount.Add(lot.BidIncrementStep)) {
		if err := s.autobids.Deactivate(ctx, tenantID, cand.ID); err != nil {
			s.log.WarnContext(ctx, "auto bid deactivation failed",
				"auto_bid_id", cand.ID, "error", err)
		}
	}
}
