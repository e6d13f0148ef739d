// Package bidding implements the bid engine: optimistic-concurrency bid
// acceptance with idempotent retries, proxy (auto) bidding and soft-close
// end-date extension. Acceptance is transactional; everything that follows a
// commit (events, auto-bid, soft close) is best effort and can never undo an
// accepted bid.
package bidding

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/config"
	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

type lotRepo interface {
	GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error)
	ApplyBid(ctx context.Context, tenantID, lotID uuid.UUID, expectedPrice decimal.Decimal, expectedBids int, newPrice decimal.Decimal, winnerID uuid.UUID) (bool, error)
	ExtendEndDate(ctx context.Context, tenantID, lotID uuid.UUID, newEnd time.Time) (bool, error)
}

type auctionGetter interface {
	GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error)
}

type bidRepo interface {
	Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	GetByIdempotencyKey(ctx context.Context, tenantID, lotID uuid.UUID, key string) (*domain.Bid, error)
	ListByLot(ctx context.Context, tenantID, lotID uuid.UUID) ([]domain.Bid, error)
}

type autoBidRepo interface {
	Upsert(ctx context.Context, ab *domain.AutoBid) (*domain.AutoBid, error)
	BestCandidate(ctx context.Context, tenantID, lotID uuid.UUID, minAmount decimal.Decimal, excludeUser uuid.UUID) (*domain.AutoBid, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
}

type userGetter interface {
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
}

type settingsProvider interface {
	GetBidding(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// eventSink broadcasts committed bid activity. Emission failures are logged,
// never returned to the bidder.
type eventSink interface {
	EmitBid(ctx context.Context, e domain.BidEvent) error
	EmitSoftClose(ctx context.Context, e domain.SoftCloseEvent) error
}

// Service implements the bid engine.
type Service struct {
	lots     lotRepo
	auctions auctionGetter
	bids     bidRepo
	autobids autoBidRepo
	users    userGetter
	settings settingsProvider
	audit    auditLogger
	tx       txManager
	events   eventSink
	cfg      config.BiddingConfig
	log      *slog.Logger
}

// NewService creates a new bid engine.
func NewService(
	log *slog.Logger,
	lots lotRepo,
	auctions auctionGetter,
	bids bidRepo,
	autobids autoBidRepo,
	users userGetter,
	settings settingsProvider,
	audit auditLogger,
	tx txManager,
	events eventSink,
	cfg config.BiddingConfig,
) *Service {
	return &Service{
		lots:     lots,
		auctions: auctions,
		bids:     bids,
		autobids: autobids,
		users:    users,
		settings: settings,
		audit:    audit,
		tx:       tx,
		events:   events,
		cfg:      cfg,
		log:      log.With("service", "bidding"),
	}
}

func (s *Service) writeAudit(ctx context.Context, record domain.AuditRecord) {
	if err := s.audit.Log(ctx, record); err != nil {
		s.log.WarnContext(ctx, "audit write failed",
			"entity_id", record.EntityID,
			"action", record.Action,
			"error", err)
	}
}

// ListBids returns a lot's bid history, oldest first.
func (s *Service) ListBids(ctx context.Context, lotID uuid.UUID) ([]domain.Bid, error) {
	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrPermission
	}
	if lotID == uuid.Nil {
		return nil, domain.NewValidationError("lot_id", "required")
	}
	return s.bids.ListByLot(ctx, tenantID, lotID)
}
