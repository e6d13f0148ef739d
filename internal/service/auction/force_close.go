package auction

import (
	"context"
	"fmt"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// Eligibility errors for ForceClose. Both unwrap to ErrConflict: the caller
// retries after the remaining lots are dealt with.
var (
	// ErrLotsStillOpen means at least one lot has not reached a terminal
	// state yet.
	ErrLotsStillOpen = fmt.Errorf("lots still open: %w", domain.ErrConflict)
	// ErrNoLotsFinished means no lot completed the sale flow: closing the
	// auction would bury lots that were only withdrawn or cancelled.
	ErrNoLotsFinished = fmt.Errorf("no lots finished: %w", domain.ErrConflict)
)

// ForceClose finalizes a bidding-phase auction once every lot is settled.
// Requires all lots terminal and at least one genuinely CLOSED (i.e. it went
// through SOLD or UNSOLD rather than being withdrawn or cancelled).
func (s *Service) ForceClose(ctx context.Context, input AuctionIDInput) (*domain.Auction, error) {
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
		domain.AuctionStatusClosed, domain.AuditActionForceClose,
		actorID, nil, nil,
		func(txCtx context.Context, _ *domain.Auction) (domain.AuctionUpdate, error) {
			counts, err := s.lots.StatusCounts(txCtx, tenantID, input.AuctionID)
			if err != nil {
				return domain.AuctionUpdate{}, fmt.Errorf("lot status counts: %w", err)
			}

			for status, n := range counts {
				if n > 0 && !status.IsTerminal() {
					return domain.AuctionUpdate{}, fmt.Errorf("%d lots in %s: %w", n, status, ErrLotsStillOpen)
				}
			}
			if counts[domain.LotStatusClosed] == 0 {
				return domain.AuctionUpdate{}, ErrNoLotsFinished
			}
			return domain.AuctionUpdate{}, nil
		})
}
