package lot

import (
	"context"
	"fmt"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// ConfirmSale settles a live lot as SOLD at the supplied hammer price to the
// supplied winner. The winner must reference an existing user; a dangling
// reference fails recoverably so the auctioneer can correct it and retry.
func (s *Service) ConfirmSale(ctx context.Context, input ConfirmSaleInput) (*domain.Lot, error) {
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

	metadata := map[string]any{
		"final_price": input.SoldPrice.String(),
		"winner_id":   input.WinnerID.String(),
	}

	return s.transition(ctx, tenantID, input.LotID,
		domain.LotStatusSold, domain.AuditActionConfirmSale,
		actorID, metadata,
		func(txCtx context.Context, current *domain.Lot) error {
			exists, err := s.users.Exists(txCtx, tenantID, input.WinnerID)
			if err != nil {
				return fmt.Errorf("check winner: %w", err)
			}
			if !exists {
				return fmt.Errorf("winner %s: %w", input.WinnerID, domain.ErrNotFound)
			}
			return nil
		},
		func(_ context.Context, _ *domain.Lot) (domain.LotUpdate, error) {
			return domain.LotUpdate{
				Price:    &input.SoldPrice,
				WinnerID: &input.WinnerID,
			}, nil
		})
}

// MarkUnsold settles a live lot that drew no acceptable bids.
func (s *Service) MarkUnsold(ctx context.Context, input LotIDInput) (*domain.Lot, error) {
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

	return s.transition(ctx, tenantID, input.LotID,
		domain.LotStatusUnsold, domain.AuditActionMarkUnsold,
		actorID, nil, nil, nil)
}

// Close files a settled lot (SOLD or UNSOLD) into its terminal state.
func (s *Service) Close(ctx context.Context, input LotIDInput) (*domain.Lot, error) {
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

	return s.transition(ctx, tenantID, input.LotID,
		domain.LotStatusClosed, domain.AuditActionClose,
		actorID, nil, nil, nil)
}
