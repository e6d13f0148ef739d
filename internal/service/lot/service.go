// Package lot implements the lot state machine, including the batch cascade
// paths driven by auction transitions. Individual transitions follow the same
// transactional shape as the auction service; cascades run inside the
// caller's transaction and derive their source set from the transition table.
package lot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

type lotRepo interface {
	Create(ctx context.Context, l *domain.Lot) (*domain.Lot, error)
	NextNumber(ctx context.Context, tenantID, auctionID uuid.UUID) (int, error)
	GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error)
	ListByAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]domain.Lot, error)
	UpdateStatus(ctx context.Context, tenantID, lotID uuid.UUID, from, to domain.LotStatus, params domain.LotUpdate) (*domain.Lot, error)
	CascadeStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from []domain.LotStatus, to domain.LotStatus) ([]uuid.UUID, error)
	StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error)
}

type auctionGetter interface {
	GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error)
}

type userChecker interface {
	Exists(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
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

// AuctionForceCloser finalizes an auction through its own validated state
// machine. Wired after construction because the auction service already
// depends on this package's cascade surface.
type AuctionForceCloser func(ctx context.Context, auctionID uuid.UUID) error

// Service implements the lot state machine.
type Service struct {
	lots         lotRepo
	auctions     auctionGetter
	users        userChecker
	bids         bidVoider
	audit        auditLogger
	tx           txManager
	finalize     AuctionForceCloser
	autoFinalize bool
	log          *slog.Logger
}

// NewService creates a new lot service. Call SetAuctionMachine before use if
// autoFinalize is on.
func NewService(
	log *slog.Logger,
	lots lotRepo,
	auctions auctionGetter,
	users userChecker,
	bids bidVoider,
	audit auditLogger,
	tx txManager,
	autoFinalize bool,
) *Service {
	return &Service{
		lots:         lots,
		auctions:     auctions,
		users:        users,
		bids:         bids,
		audit:        audit,
		tx:           tx,
		autoFinalize: autoFinalize,
		log:          log.With("service", "lot"),
	}
}

// SetAuctionMachine wires the auction machine's ForceClose for auto
// finalization.
func (s *Service) SetAuctionMachine(fn AuctionForceCloser) {
	s.finalize = fn
}

func (s *Service) writeAudit(ctx context.Context, record domain.AuditRecord) {
	if err := s.audit.Log(ctx, record); err != nil {
		s.log.WarnContext(ctx, "audit write failed",
			"entity_id", record.EntityID,
			"action", record.Action,
			"error", err)
	}
}

// transition is the lot counterpart of the auction service's shared write
// path. preconditions runs inside the transaction and may read the parent
// auction; inTx may adjust the column updates.
func (s *Service) transition(
	ctx context.Context,
	tenantID, lotID uuid.UUID,
	to domain.LotStatus,
	action domain.AuditAction,
	actorID uuid.UUID,
	metadata map[string]any,
	preconditions func(txCtx context.Context, current *domain.Lot) error,
	inTx func(txCtx context.Context, current *domain.Lot) (domain.LotUpdate, error),
) (*domain.Lot, error) {
	var updated *domain.Lot

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.lots.GetByID(txCtx, tenantID, lotID)
		if err != nil {
			return fmt.Errorf("get lot: %w", err)
		}

		if !domain.IsValidLotTransition(current.Status, to) {
			return domain.NewLotTransitionError(current.Status, to)
		}
		if preconditions != nil {
			if err := preconditions(txCtx, current); err != nil {
				return err
			}
		}

		params := domain.LotUpdate{}
		if inTx != nil {
			params, err = inTx(txCtx, current)
			if err != nil {
				return err
			}
		}

		updated, err = s.lots.UpdateStatus(txCtx, tenantID, lotID, current.Status, to, params)
		if err != nil {
			return fmt.Errorf("update lot status: %w", err)
		}

		s.writeAudit(txCtx, domain.AuditRecord{
			TenantID:   tenantID,
			ActorID:    actorID,
			EntityType: domain.EntityTypeLot,
			EntityID:   lotID,
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

	s.log.InfoContext(ctx, "lot transition",
		"lot_id", lotID,
		"to", updated.Status,
		"action", action)

	if updated.Status.IsTerminal() {
		s.evaluateAuctionCompletion(ctx, tenantID, updated.AuctionID)
	}
	return updated, nil
}

// evaluateAuctionCompletion runs after a lot reaches a terminal state. When
// every lot of the auction is finished it reports force-close eligibility
// and, if configured, closes the auction through its own state machine.
// Best effort: runs outside the lot transaction, failures are logged only.
func (s *Service) evaluateAuctionCompletion(ctx context.Context, tenantID, auctionID uuid.UUID) {
	counts, err := s.lots.StatusCounts(ctx, tenantID, auctionID)
	if err != nil {
		s.log.WarnContext(ctx, "auction completion check failed",
			"auction_id", auctionID, "error", err)
		return
	}

	total := 0
	for status, n := range counts {
		if n > 0 && !status.IsTerminal() {
			return
		}
		total += n
	}
	if total == 0 {
		return
	}

	s.log.InfoContext(ctx, "all lots finished, auction eligible for close",
		"auction_id", auctionID,
		"lots_closed", counts[domain.LotStatusClosed])

	if !s.autoFinalize || s.finalize == nil {
		return
	}
	if err := s.finalize(ctx, auctionID); err != nil {
		// Expected when nothing sold or the auction already left the
		// bidding phase; anything else is worth a warning.
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInvalidTransition) {
			s.log.InfoContext(ctx, "auto finalize skipped",
				"auction_id", auctionID, "reason", err)
			return
		}
		s.log.WarnContext(ctx, "auto finalize failed",
			"auction_id", auctionID, "error", err)
	}
}
