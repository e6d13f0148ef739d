package auction

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

type auctionRepoMock struct {
	CreateFunc       func(ctx context.Context, a *domain.Auction) (*domain.Auction, error)
	GetByIDFunc      func(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error)
	UpdateStatusFunc func(ctx context.Context, tenantID, auctionID uuid.UUID, from, to domain.AuctionStatus, params domain.AuctionUpdate) (*domain.Auction, error)

	calls struct {
		Create       []*domain.Auction
		GetByID      []uuid.UUID
		UpdateStatus []updateStatusCall
	}
	mu sync.Mutex
}

type updateStatusCall struct {
	From, To domain.AuctionStatus
	Params   domain.AuctionUpdate
}

func (m *auctionRepoMock) Create(ctx context.Context, a *domain.Auction) (*domain.Auction, error) {
	if m.CreateFunc == nil {
		panic("auctionRepoMock.CreateFunc: method is nil but Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, a)
	m.mu.Unlock()
	return m.CreateFunc(ctx, a)
}

func (m *auctionRepoMock) GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error) {
	if m.GetByIDFunc == nil {
		panic("auctionRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, auctionID)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, tenantID, auctionID)
}

func (m *auctionRepoMock) UpdateStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from, to domain.AuctionStatus, params domain.AuctionUpdate) (*domain.Auction, error) {
	if m.UpdateStatusFunc == nil {
		panic("auctionRepoMock.UpdateStatusFunc: method is nil but UpdateStatus was just called")
	}
	m.mu.Lock()
	m.calls.UpdateStatus = append(m.calls.UpdateStatus, updateStatusCall{From: from, To: to, Params: params})
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, tenantID, auctionID, from, to, params)
}

func (m *auctionRepoMock) UpdateStatusCalls() []updateStatusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateStatus
}

type lotCascaderMock struct {
	ScheduleForAuctionFunc  func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	OpenForAuctionFunc      func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	StartLiveForAuctionFunc func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	CancelForAuctionFunc    func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error)
	StatusCountsFunc        func(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error)

	calls struct {
		ScheduleForAuction  []uuid.UUID
		OpenForAuction      []uuid.UUID
		StartLiveForAuction []uuid.UUID
		CancelForAuction    []uuid.UUID
		StatusCounts        []uuid.UUID
	}
	mu sync.Mutex
}

func (m *lotCascaderMock) ScheduleForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	if m.ScheduleForAuctionFunc == nil {
		panic("lotCascaderMock.ScheduleForAuctionFunc: method is nil but ScheduleForAuction was just called")
	}
	m.mu.Lock()
	m.calls.ScheduleForAuction = append(m.calls.ScheduleForAuction, auctionID)
	m.mu.Unlock()
	return m.ScheduleForAuctionFunc(ctx, tenantID, auctionID)
}

func (m *lotCascaderMock) OpenForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	if m.OpenForAuctionFunc == nil {
		panic("lotCascaderMock.OpenForAuctionFunc: method is nil but OpenForAuction was just called")
	}
	m.mu.Lock()
	m.calls.OpenForAuction = append(m.calls.OpenForAuction, auctionID)
	m.mu.Unlock()
	return m.OpenForAuctionFunc(ctx, tenantID, auctionID)
}

func (m *lotCascaderMock) StartLiveForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	if m.StartLiveForAuctionFunc == nil {
		panic("lotCascaderMock.StartLiveForAuctionFunc: method is nil but StartLiveForAuction was just called")
	}
	m.mu.Lock()
	m.calls.StartLiveForAuction = append(m.calls.StartLiveForAuction, auctionID)
	m.mu.Unlock()
	return m.StartLiveForAuctionFunc(ctx, tenantID, auctionID)
}

func (m *lotCascaderMock) CancelForAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]uuid.UUID, error) {
	if m.CancelForAuctionFunc == nil {
		panic("lotCascaderMock.CancelForAuctionFunc: method is nil but CancelForAuction was just called")
	}
	m.mu.Lock()
	m.calls.CancelForAuction = append(m.calls.CancelForAuction, auctionID)
	m.mu.Unlock()
	return m.CancelForAuctionFunc(ctx, tenantID, auctionID)
}

func (m *lotCascaderMock) StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error) {
	if m.StatusCountsFunc == nil {
		panic("lotCascaderMock.StatusCountsFunc: method is nil but StatusCounts was just called")
	}
	m.mu.Lock()
	m.calls.StatusCounts = append(m.calls.StatusCounts, auctionID)
	m.mu.Unlock()
	return m.StatusCountsFunc(ctx, tenantID, auctionID)
}

func (m *lotCascaderMock) CancelForAuctionCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.CancelForAuction
}

type bidVoiderMock struct {
	VoidActiveByLotsFunc func(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (int64, error)

	calls struct {
		VoidActiveByLots [][]uuid.UUID
	}
	mu sync.Mutex
}

func (m *bidVoiderMock) VoidActiveByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (int64, error) {
	if m.VoidActiveByLotsFunc == nil {
		panic("bidVoiderMock.VoidActiveByLotsFunc: method is nil but VoidActiveByLots was just called")
	}
	m.mu.Lock()
	m.calls.VoidActiveByLots = append(m.calls.VoidActiveByLots, lotIDs)
	m.mu.Unlock()
	return m.VoidActiveByLotsFunc(ctx, tenantID, lotIDs)
}

func (m *bidVoiderMock) VoidActiveByLotsCalls() [][]uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.VoidActiveByLots
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

// txManagerMock runs the callback without a real transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
