package auction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Create registers a new auction in DRAFT.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Auction, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.auctions.Create(ctx, &domain.Auction{
		TenantID:    tenantID,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}

	s.log.InfoContext(ctx, "auction created", "auction_id", created.ID)
	return created, nil
}

// Get returns an auction by ID within the caller's tenant.
func (s *Service) Get(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if auctionID == uuid.Nil {
		return nil, domain.NewValidationError("auction_id", "required")
	}
	return s.auctions.GetByID(ctx, tenantID, auctionID)
}
