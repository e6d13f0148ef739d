// Package settings implements persistence for per-tenant bidding settings.
package settings

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	"github.com/hammerhouse/auction-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type settingsRow struct {
	TenantID                  uuid.UUID `db:"tenant_id"`
	IdempotencyStrategy       string    `db:"idempotency_strategy"`
	SoftCloseEnabled          bool      `db:"soft_close_enabled"`
	SoftCloseTriggerMinutes   int       `db:"soft_close_trigger_minutes"`
	SoftCloseExtensionMinutes int       `db:"soft_close_extension_minutes"`
}

// Repo provides tenant settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByTenant returns the stored settings for a tenant, or ErrNotFound when
// the tenant has no row (callers fall back to defaults).
func (r *Repo) GetByTenant(ctx context.Context, tenantID uuid.UUID) (domain.TenantSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("tenant_id", "idempotency_strategy", "soft_close_enabled",
		"soft_close_trigger_minutes", "soft_close_extension_minutes").
		From("tenant_settings").
		Where(sq.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return domain.TenantSettings{}, postgres.MapError(err, "tenant_settings", tenantID)
	}

	var row settingsRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.TenantSettings{}, postgres.MapError(err, "tenant_settings", tenantID)
	}

	return domain.TenantSettings{
		TenantID:                  row.TenantID,
		IdempotencyStrategy:       domain.IdempotencyStrategy(row.IdempotencyStrategy),
		SoftCloseEnabled:          row.SoftCloseEnabled,
		SoftCloseTriggerMinutes:   row.SoftCloseTriggerMinutes,
		SoftCloseExtensionMinutes: row.SoftCloseExtensionMinutes,
	}, nil
}

// Upsert stores a tenant's settings, replacing any existing row.
func (r *Repo) Upsert(ctx context.Context, s domain.TenantSettings) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("tenant_settings").
		Columns("tenant_id", "idempotency_strategy", "soft_close_enabled",
			"soft_close_trigger_minutes", "soft_close_extension_minutes").
		Values(s.TenantID, s.IdempotencyStrategy, s.SoftCloseEnabled,
			s.SoftCloseTriggerMinutes, s.SoftCloseExtensionMinutes).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			idempotency_strategy = EXCLUDED.idempotency_strategy,
			soft_close_enabled = EXCLUDED.soft_close_enabled,
			soft_close_trigger_minutes = EXCLUDED.soft_close_trigger_minutes,
			soft_close_extension_minutes = EXCLUDED.soft_close_extension_minutes`).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "tenant_settings", s.TenantID)
	}

	_, err = q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "tenant_settings", s.TenantID)
}
