// Package settings serves per-tenant bidding configuration to the rest of
// the core. Reads go through a cache so the bid engine does not hit the
// settings table on every bid; tenants without a stored row fall back to
// defaults.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/cache"
	"github.com/hammerhouse/auction-backend/internal/domain"
)

type settingsRepo interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error)
	Upsert(ctx context.Context, s domain.TenantSettings) error
}

// Service implements the tenant settings business logic.
type Service struct {
	repo  settingsRepo
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService creates a new settings service.
func NewService(log *slog.Logger, repo settingsRepo, c cache.Cache, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   log.With("service", "settings"),
	}
}

func cacheKey(tenantID uuid.UUID) string {
	return "tenant_settings:" + tenantID.String()
}

// GetBidding returns the tenant's bidding settings. Cache failures fall
// through to the repository; a missing row yields defaults, never an error.
func (s *Service) GetBidding(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error) {
	key := cacheKey(tenantID)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached domain.TenantSettings
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		// A corrupt entry is dropped and reloaded from the source of truth.
		_ = s.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "settings cache read failed", "tenant_id", tenantID, "error", err)
	}

	stored, err := s.repo.GetByTenant(ctx, tenantID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		stored = domain.DefaultTenantSettings(tenantID)
	default:
		return domain.TenantSettings{}, fmt.Errorf("get tenant settings: %w", err)
	}

	if raw, err := json.Marshal(stored); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.WarnContext(ctx, "settings cache write failed", "tenant_id", tenantID, "error", err)
		}
	}
	return stored, nil
}

// Update stores new settings for a tenant and invalidates the cached copy.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.TenantSettings, error) {
	if err := input.Validate(); err != nil {
		return domain.TenantSettings{}, err
	}

	updated := domain.TenantSettings{
		TenantID:                  input.TenantID,
		IdempotencyStrategy:       input.IdempotencyStrategy,
		SoftCloseEnabled:          input.SoftCloseEnabled,
		SoftCloseTriggerMinutes:   input.SoftCloseTriggerMinutes,
		SoftCloseExtensionMinutes: input.SoftCloseExtensionMinutes,
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return domain.TenantSettings{}, fmt.Errorf("upsert tenant settings: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheKey(input.TenantID)); err != nil {
		s.log.WarnContext(ctx, "settings cache invalidation failed", "tenant_id", input.TenantID, "error", err)
	}

	s.log.InfoContext(ctx, "tenant settings updated", "tenant_id", input.TenantID)
	return updated, nil
}
