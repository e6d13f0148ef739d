// Package auction implements the Auction repository using PostgreSQL.
// Status writes are conditional on the status the caller read, so a
// concurrent transition surfaces as a conflict instead of a lost update.
package auction

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

var auctionColumns = []string{
	"id", "tenant_id", "title", "description", "status",
	"open_date", "end_date", "submitted_by", "lots_count",
	"created_at", "updated_at",
}

type auctionRow struct {
	ID          uuid.UUID  `db:"id"`
	TenantID    uuid.UUID  `db:"tenant_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	OpenDate    *time.Time `db:"open_date"`
	EndDate     *time.Time `db:"end_date"`
	SubmittedBy *uuid.UUID `db:"submitted_by"`
	LotsCount   int        `db:"lots_count"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Repo provides auction persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new auction in DRAFT and returns the persisted entity.
func (r *Repo) Create(ctx context.Context, a *domain.Auction) (*domain.Auction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := psql.Insert("auctions").
		Columns("tenant_id", "title", "description", "status").
		Values(a.TenantID, a.Title, a.Description, domain.AuctionStatusDraft).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "auction", uuid.Nil)
	}

	var row auctionRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "auction", uuid.Nil)
	}
	return toDomain(row), nil
}

// GetByID returns an auction by primary key, scoped to the tenant.
func (r *Repo) GetByID(ctx context.Context, tenantID, auctionID uuid.UUID) (*domain.Auction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := psql.Select(auctionColumns...).
		From("auctions").
		Where(sq.Eq{"id": auctionID, "tenant_id": tenantID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "auction", auctionID)
	}

	var row auctionRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "auction", auctionID)
	}
	return toDomain(row), nil
}

// UpdateStatus performs a conditional status transition: the row is updated
// only if it still holds `from`. Zero rows affected means somebody else
// transitioned concurrently and surfaces as domain.ErrConflict.
func (r *Repo) UpdateStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from, to domain.AuctionStatus, params domain.AuctionUpdate) (*domain.Auction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("auctions").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": auctionID, "tenant_id": tenantID, "status": from}).
		Suffix("RETURNING " + columnList())

	if params.OpenDate != nil {
		update = update.Set("open_date", *params.OpenDate)
	}
	if params.EndDate != nil {
		update = update.Set("end_date", *params.EndDate)
	}
	if params.SubmittedBy != nil {
		update = update.Set("submitted_by", *params.SubmittedBy)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "auction", auctionID)
	}

	var row auctionRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrConflict
		}
		return nil, postgres.MapError(err, "auction", auctionID)
	}
	return toDomain(row), nil
}

func columnList() string {
	list := auctionColumns[0]
	for _, c := range auctionColumns[1:] {
		list += ", " + c
	}
	return list
}

func toDomain(row auctionRow) *domain.Auction {
	return &domain.Auction{
		ID:          row.ID,
		TenantID:    row.TenantID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.AuctionStatus(row.Status),
		OpenDate:    row.OpenDate,
		EndDate:     row.EndDate,
		SubmittedBy: row.SubmittedBy,
		LotsCount:   row.LotsCount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
