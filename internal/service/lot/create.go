package lot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Create adds a lot in DRAFT to an auction. The auction must still be in its
// composition phase; once it leaves DRAFT the lot list is fixed.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Lot, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Lot

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		parent, err := s.auctions.GetByID(txCtx, tenantID, input.AuctionID)
		if err != nil {
			return fmt.Errorf("get auction: %w", err)
		}
		if parent.Status != domain.AuctionStatusDraft {
			return fmt.Errorf("auction %s is %s, lots can only be added in DRAFT: %w",
				parent.ID, parent.Status, domain.ErrConflict)
		}

		number, err := s.lots.NextNumber(txCtx, tenantID, input.AuctionID)
		if err != nil {
			return fmt.Errorf("reserve lot number: %w", err)
		}

		created, err = s.lots.Create(txCtx, &domain.Lot{
			AuctionID:        input.AuctionID,
			TenantID:         tenantID,
			Number:           number,
			Title:            input.Title,
			StartingPrice:    input.StartingPrice,
			BidIncrementStep: input.BidIncrementStep,
			EndDate:          input.EndDate,
		})
		if err != nil {
			return fmt.Errorf("create lot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lot created",
		"lot_id", created.ID,
		"auction_id", created.AuctionID,
		"number", created.Number)
	return created, nil
}

// Get returns a lot by ID within the caller's tenant.
func (s *Service) Get(ctx context.Context, lotID uuid.UUID) (*domain.Lot, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if lotID == uuid.Nil {
		return nil, domain.NewValidationError("lot_id", "required")
	}
	return s.lots.GetByID(ctx, tenantID, lotID)
}

// ListByAuction returns the lots of an auction ordered by number.
func (s *Service) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]domain.Lot, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if auctionID == uuid.Nil {
		return nil, domain.NewValidationError("auction_id", "required")
	}
	return s.lots.ListByAuction(ctx, tenantID, auctionID)
}
