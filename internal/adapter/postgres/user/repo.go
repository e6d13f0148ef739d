// Package user implements the minimal user lookups the core needs: winner
// and bidder references point at users owned by another system.
package user

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	"github.com/hammerhouse/auction-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type userRow struct {
	ID          uuid.UUID `db:"id"`
	TenantID    uuid.UUID `db:"tenant_id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
}

// Repo provides user lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Exists reports whether a user ID resolves within the tenant.
func (r *Repo) Exists(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND tenant_id = $2)`,
		userID, tenantID).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "user", userID)
	}
	return exists, nil
}

// GetByID returns a user by primary key, scoped to the tenant.
func (r *Repo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("id", "tenant_id", "display_name", "created_at").
		From("users").
		Where(sq.Eq{"id": userID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}

	return &domain.User{
		ID:          row.ID,
		TenantID:    row.TenantID,
		DisplayName: row.DisplayName,
		CreatedAt:   row.CreatedAt,
	}, nil
}
