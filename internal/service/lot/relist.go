package lot

import (
	"context"
	"fmt"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Relist moves an UNSOLD lot under a new auction for another attempt. Two
// transitions in one transaction: UNSOLD→RELISTED records the decision, then
// RELISTED→SCHEDULED re-enters the new auction's schedule with the price
// reset to the starting price and the bidding history cleared.
func (s *Service) Relist(ctx context.Context, input RelistInput) (*domain.Lot, error) {
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

	var relisted *domain.Lot

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.lots.GetByID(txCtx, tenantID, input.LotID)
		if err != nil {
			return fmt.Errorf("get lot: %w", err)
		}
		if !domain.IsValidLotTransition(current.Status, domain.LotStatusRelisted) {
			return domain.NewLotTransitionError(current.Status, domain.LotStatusRelisted)
		}
		if current.AuctionID == input.AuctionID {
			return domain.NewValidationError("auction_id", "must differ from the current auction")
		}

		target, err := s.auctions.GetByID(txCtx, tenantID, input.AuctionID)
		if err != nil {
			return fmt.Errorf("get target auction: %w", err)
		}
		switch target.Status {
		case domain.AuctionStatusDraft, domain.AuctionStatusPendingValidation, domain.AuctionStatusApproved:
		default:
			return fmt.Errorf("target auction %s is %s: %w", target.ID, target.Status, domain.ErrConflict)
		}

		if _, err := s.lots.UpdateStatus(txCtx, tenantID, input.LotID,
			current.Status, domain.LotStatusRelisted, domain.LotUpdate{}); err != nil {
			return fmt.Errorf("mark relisted: %w", err)
		}

		number, err := s.lots.NextNumber(txCtx, tenantID, input.AuctionID)
		if err != nil {
			return fmt.Errorf("reserve lot number: %w", err)
		}

		relisted, err = s.lots.UpdateStatus(txCtx, tenantID, input.LotID,
			domain.LotStatusRelisted, domain.LotStatusScheduled, domain.LotUpdate{
				AuctionID:     &input.AuctionID,
				Number:        &number,
				Price:         &current.StartingPrice,
				ResetBidState: true,
			})
		if err != nil {
			return fmt.Errorf("reschedule: %w", err)
		}

		s.writeAudit(txCtx, domain.AuditRecord{
			TenantID:   tenantID,
			ActorID:    actorID,
			EntityType: domain.EntityTypeLot,
			EntityID:   input.LotID,
			Action:     domain.AuditActionRelist,
			Before:     current.Snapshot(),
			After:      relisted.Snapshot(),
			Metadata: map[string]any{
				"previous_auction_id": current.AuctionID.String(),
				"new_auction_id":      input.AuctionID.String(),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lot relisted",
		"lot_id", input.LotID,
		"new_auction_id", input.AuctionID)
	return relisted, nil
}
