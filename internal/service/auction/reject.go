package auction

import (
	"context"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Reject returns a submitted auction to DRAFT. REJECTED is an audit action,
// not a status: the notes land in the ledger, the row goes back to DRAFT.
func (s *Service) Reject(ctx context.Context, input RejectInput) (*domain.Auction, error) {
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
		domain.AuctionStatusDraft, domain.AuditActionReject,
		actorID,
		map[string]any{"notes": input.Notes},
		nil, nil)
}
