package lot

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

type lotRepoMock struct {
	CreateFunc        func(ctx context.Context, l *domain.Lot) (*domain.Lot, error)
	NextNumberFunc    func(ctx context.Context, tenantID, auctionID uuid.UUID) (int, error)
	GetByIDFunc       func(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error)
	ListByAuctionFunc func(ctx context.Context, tenantID, auctionID uuid.UUID) ([]domain.Lot, error)
	UpdateStatusFunc  func(ctx context.Context, tenantID, lotID uuid.UUID, from, to domain.LotStatus, params domain.LotUpdate) (*domain.Lot, error)
	CascadeStatusFunc func(ctx context.Context, tenantID, auctionID uuid.UUID, from []domain.LotStatus, to domain.LotStatus) ([]uuid.UUID, error)
	StatusCountsFunc  func(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error)

	calls struct {
		Create        []*domain.Lot
		UpdateStatus  []lotUpdateStatusCall
		CascadeStatus []cascadeStatusCall
	}
	mu sync.Mutex
}

type lotUpdateStatusCall struct {
	From, To domain.LotStatus
	Params   domain.LotUpdate
}

type cascadeStatusCall struct {
	From []domain.LotStatus
	To   domain.LotStatus
}

func (m *lotRepoMock) Create(ctx context.Context, l *domain.Lot) (*domain.Lot, error) {
	if m.CreateFunc == nil {
		panic("lotRepoMock.CreateFunc: method is nil but Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, l)
	m.mu.Unlock()
	return m.CreateFunc(ctx, l)
}

func (m *lotRepoMock) NextNumber(ctx context.Context, tenantID, auctionID uuid.UUID) (int, error) {
	if m.NextNumberFunc == nil {
		panic("lotRepoMock.NextNumberFunc: method is nil but NextNumber was just called")
	}
	return m.NextNumberFunc(ctx, tenantID, auctionID)
}

func (m *lotRepoMock) GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error) {
	if m.GetByIDFunc == nil {
		panic("lotRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, tenantID, lotID)
}

func (m *lotRepoMock) ListByAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]domain.Lot, error) {
	if m.ListByAuctionFunc == nil {
		panic("lotRepoMock.ListByAuctionFunc: method is nil but ListByAuction was just called")
	}
	return m.ListByAuctionFunc(ctx, tenantID, auctionID)
}

func (m *lotRepoMock) UpdateStatus(ctx context.Context, tenantID, lotID uuid.UUID, from, to domain.LotStatus, params domain.LotUpdate) (*domain.Lot, error) {
	if m.UpdateStatusFunc == nil {
		panic("lotRepoMock.UpdateStatusFunc: method is nil but UpdateStatus was just called")
	}
	m.mu.Lock()
	m.calls.UpdateStatus = append(m.calls.UpdateStatus, lotUpdateStatusCall{From: from, To: to, Params: params})
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, tenantID, lotID, from, to, params)
}

func (m *lotRepoMock) CascadeStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from []domain.LotStatus, to domain.LotStatus) ([]uuid.UUID, error) {
	if m.CascadeStatusFunc == nil {
		panic("lotRepoMock.CascadeStatusFunc: method is nil but CascadeStatus was just called")
	}
	m.mu.Lock()
	m.calls.CascadeStatus = append(m.calls.CascadeStatus, cascadeStatusCall{From: from, To: to})
	m.mu.Unlock()
	return m.CascadeStatusFunc(ctx, tenantID, auctionID, from, to)
}

func (m *lotRepoMock) StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error) {
	if m.StatusCountsFunc == nil {
		panic("lotRepoMock.StatusCountsFunc: method is nil but StatusCounts was just called")
	}
	return m.StatusCountsFunc(ctx, tenantID, auctionID)
}

func (m *lotRepoMock) UpdateStatusCalls() []lotUpdateStatusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateStatus
}

func (m *lotRepoMock) CascadeStatusCalls() []cascadeStatusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.CascadeStatus
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

type userCheckerMock struct {
	ExistsFunc func(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
}

func (m *userCheckerMock) Exists(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	if m.ExistsFunc == nil {
		panic("userCheckerMock.ExistsFunc: method is nil but Exists was just called")
	}
	return m.ExistsFunc(ctx, tenantID, userID)
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
