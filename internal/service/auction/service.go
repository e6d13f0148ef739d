// Package auction implements the auction state machine. Every operation
// follows the same shape: resolve actor and tenant from the context, validate
// input, open a transaction, re-read the auction, consult the transition
// table, apply preconditions, write conditionally on the status just read,
// append an audit record, commit.
package auction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type auctionRepo interface {
	Create(ctx context.Context, a *domain.Auction) (*domain.Auction, error)
	GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error)
	UpdateStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from, to domain.AuctionStatus, params domain.AuctionUpdate) (*domain.Auction, error)
}

// lotCascader is implemented by the lot service. Its methods run inside the
// caller's transaction context and honor the lot transition table.
type lotCascader interface {
	ScheduleForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	OpenForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	StartLiveForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	CancelForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error)
}

type bidVoider interface {
	VoidActiveByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (int64, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the auction state machine.
type Service struct {
	auctions auctionRepo
	lots     lotCascader
	bids     bidVoider
	audit    auditLogger
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new auction service.
func NewService(
	log *slog.Logger,
	auctions auctionRepo,
	lots lotCascader,
	bids bidVoider,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		auctions: auctions,
		lots:     lots,
		bids:     bids,
		audit:    audit,
		tx:       tx,
		log:      log.With("service", "auction"),
	}
}

// writeAudit appends an audit record. Ledger failures never abort the
// business transaction; they are logged and swallowed.
func (s *Service) writeAudit(ctx context.Context, record domain.AuditRecord) {
	if err := s.audit.Log(ctx, record); err != nil {
		s.log.WarnContext(ctx, "audit write failed",
			"entity_id", record.EntityID,
			"action", record.Action,
			"error", err)
	}
}

// transition loads the auction, checks the transition table and runs the
// shared write path. preconditions runs after the graph check with the
// current row; mutate may adjust the column updates.
func (s *Service) transition(
	ctx context.Context,
	tenantID, auctionID uuid.UUID,
	to domain.AuctionStatus,
	action domain.AuditAction,
	actorID uuid.UUID,
	metadata map[string]any,
	preconditions func(current *domain.Auction) error,
	inTx func(txCtx context.Context, current *domain.Auction) (domain.AuctionUpdate, error),
) (*domain.Auction, error) {
	var updated *domain.Auction

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.auctions.GetByID(txCtx, tenantID, auctionID)
		if err != nil {
			return fmt.Errorf("get auction: %w", err)
		}

		if !domain.IsValidAuctionTransition(current.Status, to) {
			return domain.NewAuctionTransitionError(current.Status, to)
		}
		if preconditions != nil {
			if err := preconditions(current); err != nil {
				return err
			}
		}

		params := domain.AuctionUpdate{}
		if inTx != nil {
			params, err = inTx(txCtx, current)
			if err != nil {
				return err
			}
		}

		updated, err = s.auctions.UpdateStatus(txCtx, tenantID, auctionID, current.Status, to, params)
		if err != nil {
			return fmt.Errorf("update auction status: %w", err)
		}

		s.writeAudit(txCtx, domain.AuditRecord{
			TenantID:   tenantID,
			ActorID:    actorID,
			EntityType: domain.EntityTypeAuction,
			EntityID:   auctionID,
			Action:     action,
			Before:     current.Snapshot(),
			After:      updated.Snapshot(),
			Metadata:   metadata,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "auction transition",
		"auction_id", auctionID,
		"to", updated.Status,
		"action", action)
	return updated, nil
}
