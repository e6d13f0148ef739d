package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Approve validates a submitted auction and schedules it. The approver must
// not be the user who submitted it, and the open date must lie in the future.
// Lots still in DRAFT move to SCHEDULED within the same transaction.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (*domain.Auction, error) {
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
	if !input.OpenDate.After(time.Now()) {
		return nil, domain.NewValidationError("open_date", "must be in the future")
	}

	var scheduled []uuid.UUID

	updated, err := s.transition(ctx, tenantID, input.AuctionID,
		domain.AuctionStatusApproved, domain.AuditActionApprove,
		actorID,
		map[string]any{
			"open_date": input.OpenDate.UTC().Format(time.RFC3339),
			"end_date":  input.EndDate.UTC().Format(time.RFC3339),
		},
		func(current *domain.Auction) error {
			if current.SubmittedBy != nil && *current.SubmittedBy == actorID {
				return fmt.Errorf("submitter cannot approve own auction: %w", domain.ErrPermission)
			}
			return nil
		},
		func(txCtx context.Context, _ *domain.Auction) (domain.AuctionUpdate, error) {
			ids, err := s.lots.ScheduleForAuction(txCtx, tenantID, input.AuctionID)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("schedule lots: %w", err)
			}
			scheduled = ids
			return domain.AuctionUpdate{
				OpenDate: &input.OpenDate,
				EndDate:  &input.EndDate,
			}, nil
		})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "auction approved",
		"auction_id", input.AuctionID,
		"lots_scheduled", len(scheduled))
	return updated, nil
}
