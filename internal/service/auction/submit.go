package auction

import (
	"context"
	"fmt"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// SubmitForValidation moves a DRAFT auction to PENDING_VALIDATION and records
// the submitter, who later must differ from the approver. A draft qualifies
// only once it carries at least one lot, a title of 3+ characters and a
// description of 10+ characters.
func (s *Service) SubmitForValidation(ctx context.Context, input SubmitInput) (*domain.Auction, error) {
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
		domain.AuctionStatusPendingValidation, domain.AuditActionSubmit,
		actorID, nil,
		func(current *domain.Auction) error {
			var errs []domain.FieldError
			if len(current.Title) < 3 {
				errs = append(errs, domain.FieldError{Field: "title", Message: "min 3 characters"})
			}
			if len(current.Description) < 10 {
				errs = append(errs, domain.FieldError{Field: "description", Message: "min 10 characters"})
			}
			if len(errs) > 0 {
				return domain.NewValidationErrors(errs)
			}
			return nil
		},
		func(txCtx context.Context, _ *domain.Auction) (domain.AuctionUpdate, error) {
			counts, err := s.lots.StatusCounts(txCtx, tenantID, input.AuctionID)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("lot status counts: %w", err)
			}
			total := 0
			for _, n := range counts {
				total += n
			}
			if total == 0 {
				return domain.AuctionUpdate{}, domain.NewValidationError("lots", "at least one lot required")
			}
			return domain.AuctionUpdate{SubmittedBy: &actorID}, nil
		})
}
