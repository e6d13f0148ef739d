// Package autobid implements persistence for standing proxy limits.
package autobid

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	"github.com/hammerhouse/auction-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const autoBidColumns = "id, lot_id, user_id, tenant_id, max_amount, active, created_at"

type autoBidRow struct {
	ID        uuid.UUID       `db:"id"`
	LotID     uuid.UUID       `db:"lot_id"`
	UserID    uuid.UUID       `db:"user_id"`
	TenantID  uuid.UUID       `db:"tenant_id"`
	MaxAmount decimal.Decimal `db:"max_amount"`
	Active    bool            `db:"active"`
	CreatedAt time.Time       `db:"created_at"`
}

// Repo provides auto-bid persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auto-bid repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert stores a user's proxy limit for a lot, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, ab *domain.AutoBid) (*domain.AutoBid, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("auto_bids").
		Columns("lot_id", "user_id", "tenant_id", "max_amount", "active").
		Values(ab.LotID, ab.UserID, ab.TenantID, ab.MaxAmount, true).
		Suffix(`ON CONFLICT (lot_id, user_id) DO UPDATE
			SET max_amount = EXCLUDED.max_amount, active = true
			RETURNING ` + autoBidColumns).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "auto_bid", uuid.Nil)
	}

	var row autoBidRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "auto_bid", uuid.Nil)
	}
	return toDomain(row), nil
}

// BestCandidate returns the strongest active proxy limit on a lot that can
// still beat minAmount, excluding the bidder currently in the lead. Ties on
// max_amount break toward the earliest-registered limit.
func (r *Repo) BestCandidate(ctx context.Context, tenantID, lotID uuid.UUID, minAmount decimal.Decimal, excludeUser uuid.UUID) (*domain.AutoBid, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "lot_id", "user_id", "tenant_id", "max_amount", "active", "created_at").
		From("auto_bids").
		Where(sq.Eq{"tenant_id": tenantID, "lot_id": lotID, "active": true}).
		Where(sq.GtOrEq{"max_amount": minAmount}).
		Where(sq.NotEq{"user_id": excludeUser}).
		OrderBy("max_amount DESC", "created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "auto_bid", lotID)
	}

	var row autoBidRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "auto_bid", lotID)
	}
	return toDomain(row), nil
}

// Deactivate retires a proxy limit (e.g. once its maximum is reached).
func (r *Repo) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("auto_bids").
		Set("active", false).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "auto_bid", id)
	}

	_, err = q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "auto_bid", id)
}

func toDomain(row autoBidRow) *domain.AutoBid {
	return &domain.AutoBid{
		ID:        row.ID,
		LotID:     row.LotID,
		UserID:    row.UserID,
		TenantID:  row.TenantID,
		MaxAmount: row.MaxAmount,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
}
