package bidding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

type lotRepoMock struct {
	GetByIDFunc       func(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error)
	ApplyBidFunc      func(ctx context.Context, tenantID, lotID uuid.UUID, expectedPrice decimal.Decimal, expectedBids int, newPrice decimal.Decimal, winnerID uuid.UUID) (bool, error)
	ExtendEndDateFunc func(ctx context.Context, tenantID, lotID uuid.UUID, newEnd time.Time) (bool, error)

	calls struct {
		ApplyBid      []applyBidCall
		ExtendEndDate []time.Time
	}
	mu sync.Mutex
}

type applyBidCall struct {
	ExpectedPrice decimal.Decimal
	ExpectedBids  int
	NewPrice      decimal.Decimal
	WinnerID      uuid.UUID
}

func (m *lotRepoMock) GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error) {
	if m.GetByIDFunc == nil {
		panic("lotRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, tenantID, lotID)
}

func (m *lotRepoMock) ApplyBid(ctx context.Context, tenantID, lotID uuid.UUID, expectedPrice decimal.Decimal, expectedBids int, newPrice decimal.Decimal, winnerID uuid.UUID) (bool, error) {
	if m.ApplyBidFunc == nil {
		panic("lotRepoMock.ApplyBidFunc: method is nil but ApplyBid was just called")
	}
	m.mu.Lock()
	m.calls.ApplyBid = append(m.calls.ApplyBid, applyBidCall{ExpectedPrice: expectedPrice, ExpectedBids: expectedBids, NewPrice: newPrice, WinnerID: winnerID})
	m.mu.Unlock()
	return m.ApplyBidFunc(ctx, tenantID, lotID, expectedPrice, expectedBids, newPrice, winnerID)
}

func (m *lotRepoMock) ExtendEndDate(ctx context.Context, tenantID, lotID uuid.UUID, newEnd time.Time) (bool, error) {
	if m.ExtendEndDateFunc == nil {
		panic("lotRepoMock.ExtendEndDateFunc: method is nil but ExtendEndDate was just called")
	}
	m.mu.Lock()
	m.calls.ExtendEndDate = append(m.calls.ExtendEndDate, newEnd)
	m.mu.Unlock()
	return m.ExtendEndDateFunc(ctx, tenantID, lotID, newEnd)
}

func (m *lotRepoMock) ApplyBidCalls() []applyBidCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ApplyBid
}

func (m *lotRepoMock) ExtendEndDateCalls() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ExtendEndDate
}

type auctionGetterMock struct {
	GetByIDFunc func(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error)
}

func (m *auctionGetterMock) GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error) {
	if m.GetByIDFunc == nil {
		panic("auctionGetterMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, tenantID, auctionID)
}

type bidRepoMock struct {
	CreateFunc              func(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	GetByIdempotencyKeyFunc func(ctx context.Context, tenantID, lotID uuid.UUID, key string) (*domain.Bid, error)
	ListByLotFunc           func(ctx context.Context, tenantID, lotID uuid.UUID) ([]domain.Bid, error)

	calls struct {
		Create []*domain.Bid
	}
	mu sync.Mutex
}

func (m *bidRepoMock) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	if m.CreateFunc == nil {
		panic("bidRepoMock.CreateFunc: method is nil but Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, b)
	m.mu.Unlock()
	return m.CreateFunc(ctx, b)
}

func (m *bidRepoMock) GetByIdempotencyKey(ctx context.Context, tenantID, lotID uuid.UUID, key string) (*domain.Bid, error) {
	if m.GetByIdempotencyKeyFunc == nil {
		panic("bidRepoMock.GetByIdempotencyKeyFunc: method is nil but GetByIdempotencyKey was just called")
	}
	return m.GetByIdempotencyKeyFunc(ctx, tenantID, lotID, key)
}

func (m *bidRepoMock) ListByLot(ctx context.Context, tenantID, lotID uuid.UUID) ([]domain.Bid, error) {
	if m.ListByLotFunc == nil {
		panic("bidRepoMock.ListByLotFunc: method is nil but ListByLot was just called")
	}
	return m.ListByLotFunc(ctx, tenantID, lotID)
}

func (m *bidRepoMock) CreateCalls() []*domain.Bid {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

type autoBidRepoMock struct {
	UpsertFunc        func(ctx context.Context, ab *domain.AutoBid) (*domain.AutoBid, error)
	BestCandidateFunc func(ctx context.Context, tenantID, lotID uuid.UUID, minAmount decimal.Decimal, excludeUser uuid.UUID) (*domain.AutoBid, error)
	DeactivateFunc    func(ctx context.Context, tenantID, id uuid.UUID) error

	calls struct {
		Deactivate []uuid.UUID
	}
	mu sync.Mutex
}

func (m *autoBidRepoMock) Upsert(ctx context.Context, ab *domain.AutoBid) (*domain.AutoBid, error) {
	if m.UpsertFunc == nil {
		panic("autoBidRepoMock.UpsertFunc: method is nil but Upsert was just called")
	}
	return m.UpsertFunc(ctx, ab)
}

func (m *autoBidRepoMock) BestCandidate(ctx context.Context, tenantID, lotID uuid.UUID, minAmount decimal.Decimal, excludeUser uuid.UUID) (*domain.AutoBid, error) {
	if m.BestCandidateFunc == nil {
		panic("autoBidRepoMock.BestCandidateFunc: method is nil but BestCandidate was just called")
	}
	return m.BestCandidateFunc(ctx, tenantID, lotID, minAmount, excludeUser)
}

func (m *autoBidRepoMock) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	if m.DeactivateFunc == nil {
		panic("autoBidRepoMock.DeactivateFunc: method is nil but Deactivate was just called")
	}
	m.mu.Lock()
	m.calls.Deactivate = append(m.calls.Deactivate, id)
	m.mu.Unlock()
	return m.DeactivateFunc(ctx, tenantID, id)
}

func (m *autoBidRepoMock) DeactivateCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Deactivate
}

type userGetterMock struct {
	GetByIDFunc func(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
}

func (m *userGetterMock) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userGetterMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, tenantID, userID)
}

type settingsProviderMock struct {
	GetBiddingFunc func(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error)
}

func (m *settingsProviderMock) GetBidding(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error) {
	if m.GetBiddingFunc == nil {
		panic("settingsProviderMock.GetBiddingFunc: method is nil but GetBidding was just called")
	}
	return m.GetBiddingFunc(ctx, tenantID)
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	calls struct {
		Log []domain.AuditRecord
	}
	mu sync.Mutex
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if m.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but Log was just called")
	}
	m.mu.Lock()
	m.calls.Log = append(m.calls.Log, record)
	m.mu.Unlock()
	return m.LogFunc(ctx, record)
}

func (m *auditLoggerMock) LogCalls() []domain.AuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Log
}

type eventSinkMock struct {
	EmitBidFunc       func(ctx context.Context, e domain.BidEvent) error
	EmitSoftCloseFunc func(ctx context.Context, e domain.SoftCloseEvent) error

	calls struct {
		EmitBid       []domain.BidEvent
		EmitSoftClose []domain.SoftCloseEvent
	}
	mu sync.Mutex
}

func (m *eventSinkMock) EmitBid(ctx context.Context, e domain.BidEvent) error {
	m.mu.Lock()
	m.calls.EmitBid = append(m.calls.EmitBid, e)
	m.mu.Unlock()
	if m.EmitBidFunc == nil {
		return nil
	}
	return m.EmitBidFunc(ctx, e)
}

func (m *eventSinkMock) EmitSoftClose(ctx context.Context, e domain.SoftCloseEvent) error {
	m.mu.Lock()
	m.calls.EmitSoftClose = append(m.calls.EmitSoftClose, e)
	m.mu.Unlock()
	if m.EmitSoftCloseFunc == nil {
		return nil
	}
	return m.EmitSoftCloseFunc(ctx, e)
}

func (m *eventSinkMock) EmitBidCalls() []domain.BidEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.EmitBid
}

func (m *eventSinkMock) EmitSoftCloseCalls() []domain.SoftCloseEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.EmitSoftClose
}

// txManagerMock runs the callback without a real transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
