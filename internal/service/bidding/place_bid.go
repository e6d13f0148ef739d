package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// PlaceBid accepts or rejects a bid. Preconditions are checked in order: the
// lot resolves, the lot is biddable, the parent auction is taking bids, the
// amount clears the minimum. Acceptance inserts the bid and moves the lot's
// price with one conditional update; losing that race surfaces as
// ConcurrencyConflictError carrying the now-current price.
func (s *Service) PlaceBid(ctx context.Context, input PlaceBidInput) (*BidResult, error) {
	bidderID, ok := ctxutil.ActorIDFromCtx(ctx)
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
	return s.placeBid(ctx, tenantID, bidderID, input, domain.BidOriginManual, 0)
}

// placeBid is the shared path for manual and synthesized bids. hop counts
// auto-bid recursion depth: an auto bid never triggers another one.
func (s *Service) placeBid(
	ctx context.Context,
	tenantID, bidderID uuid.UUID,
	input PlaceBidInput,
	origin domain.BidOrigin,
	hop int,
) (*BidResult, error) {
	settings, err := s.settings.GetBidding(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant settings: %w", err)
	}
	key := s.idempotencyKey(settings, input, bidderID, time.Now())

	var (
		result   BidResult
		lotAfter *domain.Lot
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		lot, err := s.lots.GetByID(txCtx, tenantID, input.LotID)
		if err != nil {
			return fmt.Errorf("get lot: %w", err)
		}

		if key != nil {
			existing, err := s.bids.GetByIdempotencyKey(txCtx, tenantID, lot.ID, *key)
			if err == nil {
				result = BidResult{
					BidID:          existing.ID,
					AcceptedAmount: existing.Amount,
					Deduplicated:   true,
				}
				return nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("idempotency lookup: %w", err)
			}
		}

		if !lot.Status.IsBiddable() {
			return fmt.Errorf("lot %s is %s: %w", lot.ID, lot.Status, domain.ErrLotClosed)
		}

		auction, err := s.auctions.GetByID(txCtx, tenantID, lot.AuctionID)
		if err != nil {
			return fmt.Errorf("get auction: %w", err)
		}
		if auction.Status != domain.AuctionStatusOpenForBids && auction.Status != domain.AuctionStatusLiveAuction {
			return fmt.Errorf("auction %s is %s: %w", auction.ID, auction.Status, domain.ErrAuctionNotOpen)
		}

		minimum := lot.MinimumNextBid()
		if input.Amount.LessThan(minimum) {
			return &domain.BidTooLowError{MinimumAcceptable: minimum}
		}

		created, err := s.bids.Create(txCtx, &domain.Bid{
			LotID:           lot.ID,
			AuctionID:       lot.AuctionID,
			BidderID:        bidderID,
			TenantID:        tenantID,
			Amount:          input.Amount,
			Origin:          origin,
			Status:          domain.BidStatusActive,
			IdempotencyKey:  key,
			ClientTimestamp: input.ClientTimestamp,
			IPAddress:       input.IPAddress,
			UserAgent:       input.UserAgent,
		})
		if err != nil {
			// A concurrent retry won the unique-key race; surface its bid.
			if key != nil && errors.Is(err, domain.ErrAlreadyExists) {
				existing, lookupErr := s.bids.GetByIdempotencyKey(txCtx, tenantID, lot.ID, *key)
				if lookupErr == nil {
					result = BidResult{
						BidID:          existing.ID,
						AcceptedAmount: existing.Amount,
						Deduplicated:   true,
					}
					return nil
				}
			}
			return fmt.Errorf("insert bid: %w", err)
		}

		ok, err := s.lots.ApplyBid(txCtx, tenantID, lot.ID, lot.Price, lot.BidsCount, input.Amount, bidderID)
		if err != nil {
			return fmt.Errorf("apply bid: %w", err)
		}
		if !ok {
			current, readErr := s.lots.GetByID(txCtx, tenantID, lot.ID)
			if readErr != nil {
				return fmt.Errorf("read lot after conflict: %w", readErr)
			}
			return &domain.ConcurrencyConflictError{CurrentPrice: current.Price}
		}

		after := *lot
		after.Price = input.Amount
		after.BidsCount++
		after.WinnerID = &bidderID
		lotAfter = &after

		s.writeAudit(txCtx, domain.AuditRecord{
			TenantID:   tenantID,
			ActorID:    bidderID,
			EntityType: domain.EntityTypeBid,
			EntityID:   created.ID,
			Action:     domain.AuditActionBidPlaced,
			Before:     lot.Snapshot(),
			After:      after.Snapshot(),
			Metadata: map[string]any{
				"lot_id": lot.ID.String(),
				"amount": input.Amount.String(),
				"origin": origin.String(),
			},
		})

		result = BidResult{BidID: created.ID, AcceptedAmount: input.Amount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Deduplicated {
		s.log.InfoContext(ctx, "bid deduplicated",
			"lot_id", input.LotID, "bid_id", result.BidID)
		return &result, nil
	}

	s.log.InfoContext(ctx, "bid accepted",
		"lot_id", input.LotID,
		"bid_id", result.BidID,
		"amount", result.AcceptedAmount,
		"origin", origin)

	s.emitBid(ctx, lotAfter, result.BidID, bidderID, origin)
	s.evaluateSoftClose(ctx, settings, lotAfter)
	if hop == 0 && s.cfg.AutoBidEnabled {
		s.evaluateAutoBid(ctx, tenantID, lotAfter, bidderID)
	}
	return &result, nil
}

func (s *Service) emitBid(ctx context.Context, lot *domain.Lot, bidID, bidderID uuid.UUID, origin domain.BidOrigin) {
	display := ""
	if bidder, err := s.users.GetByID(ctx, lot.TenantID, bidderID); err == nil {
		display = bidder.DisplayName
	}

	e := domain.BidEvent{
		TenantID:      lot.TenantID,
		AuctionID:     lot.AuctionID,
		LotID:         lot.ID,
		BidID:         bidID,
		BidderID:      bidderID,
		BidderDisplay: display,
		Amount:        lot.Price,
		Origin:        origin,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.EmitBid(ctx, e); err != nil {
		s.log.WarnContext(ctx, "bid event emission failed",
			"lot_id", lot.ID, "bid_id", bidID, "error", err)
	}
}
