package lot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Withdraw pulls a lot before it reaches the live block. Active bids on the
// lot are voided in the same transaction.
func (s *Service) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Lot, error) {
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

	metadata := map[string]any{"reason": input.Reason}

	updated, err := s.transition(ctx, tenantID, input.LotID,
		domain.LotStatusWithdrawn, domain.AuditActionWithdraw,
		actorID, metadata, nil,
		func(txCtx context.Context, current *domain.Lot) (domain.LotUpdate, error) {
			voided, err := s.bids.VoidActiveByLots(txCtx, tenantID, []uuid.UUID{current.ID})
			if err != nil {
				return domain.LotUpdate{}, fmt.Errorf("void bids: %w", err)
			}
			metadata["bids_voided"] = voided
			return domain.LotUpdate{}, nil
		})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lot withdrawn", "lot_id", input.LotID)
	return updated, nil
}

// CancelLot cancels a single lot outside the auction-level cascade, voiding
// its active bids.
func (s *Service) CancelLot(ctx context.Context, input WithdrawInput) (*domain.Lot, error) {
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

	metadata := map[string]any{"reason": input.Reason}

	return s.transition(ctx, tenantID, input.LotID,
		domain.LotStatusCancelled, domain.AuditActionCancel,
		actorID, metadata, nil,
		func(txCtx context.Context, current *domain.Lot) (domain.LotUpdate, error) {
			voided, err := s.bids.VoidActiveByLots(txCtx, tenantID, []uuid.UUID{current.ID})
			if err != nil {
				return domain.LotUpdate{}, fmt.Errorf("void bids: %w", err)
			}
			metadata["bids_voided"] = voided
			return domain.LotUpdate{}, nil
		})
}
