package settings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

type settingsRepoMock struct {
	GetByTenantFunc func(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error)
	UpsertFunc      func(ctx context.Context, s domain.TenantSettings) error

	calls struct {
		GetByTenant []uuid.UUID
		Upsert      []domain.TenantSettings
	}
	mu sync.Mutex
}

func (m *settingsRepoMock) GetByTenant(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error) {
	if m.GetByTenantFunc == nil {
		panic("settingsRepoMock.GetByTenantFunc: method is nil but GetByTenant was just called")
	}
	m.mu.Lock()
	m.calls.GetByTenant = append(m.calls.GetByTenant, tenantID)
	m.mu.Unlock()
	return m.GetByTenantFunc(ctx, tenantID)
}

func (m *settingsRepoMock) Upsert(ctx context.Context, s domain.TenantSettings) error {
	if m.UpsertFunc == nil {
		panic("settingsRepoMock.UpsertFunc: method is nil but Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, s)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, s)
}

func (m *settingsRepoMock) GetByTenantCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.GetByTenant
}

// cacheMock is an in-memory Cache with injectable failures.
type cacheMock struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *cacheMock) Get(ctx context.Context, key string) ([]byte, error) {
	return m.GetFunc(ctx, key)
}

func (m *cacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.SetFunc(ctx, key, value, ttl)
}

func (m *cacheMock) Delete(ctx context.Context, key string) error {
	return m.DeleteFunc(ctx, key)
}
