// Package bid implements the Bid repository using PostgreSQL. Bid rows are
// append-only except for voiding, which flips status on cascade-cancel.
package bid

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

var bidColumns = []string{
	"id", "lot_id", "auction_id", "bidder_id", "tenant_id", "amount",
	"origin", "status", "idempotency_key", "client_timestamp",
	"ip_address", "user_agent", "created_at",
}

type bidRow struct {
	ID              uuid.UUID       `db:"id"`
	LotID           uuid.UUID       `db:"lot_id"`
	AuctionID       uuid.UUID       `db:"auction_id"`
	BidderID        uuid.UUID       `db:"bidder_id"`
	TenantID        uuid.UUID       `db:"tenant_id"`
	Amount          decimal.Decimal `db:"amount"`
	Origin          string          `db:"origin"`
	Status          string          `db:"status"`
	IdempotencyKey  *string         `db:"idempotency_key"`
	ClientTimestamp *time.Time      `db:"client_timestamp"`
	IPAddress       string          `db:"ip_address"`
	UserAgent       string          `db:"user_agent"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Repo provides bid persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bid repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a bid row. The partial unique index on
// (lot_id, idempotency_key) turns a raced duplicate into ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	insert := psql.Insert("bids").
		Columns("lot_id", "auction_id", "bidder_id", "tenant_id", "amount",
			"origin", "status", "idempotency_key", "client_timestamp",
			"ip_address", "user_agent").
		Values(b.LotID, b.AuctionID, b.BidderID, b.TenantID, b.Amount,
			b.Origin, domain.BidStatusActive, b.IdempotencyKey, b.ClientTimestamp,
			b.IPAddress, b.UserAgent).
		Suffix("RETURNING " + columnList())

	sql, args, err := insert.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "bid", uuid.Nil)
	}

	var row bidRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bid", uuid.Nil)
	}
	return toDomain(row), nil
}

// GetByIdempotencyKey looks up a prior bid for deduplication.
func (r *Repo) GetByIdempotencyKey(ctx context.Context, tenantID, lotID uuid.UUID, key string) (*domain.Bid, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"tenant_id": tenantID, "lot_id": lotID, "idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "bid", lotID)
	}

	var row bidRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bid", lotID)
	}
	return toDomain(row), nil
}

// ListByLot returns a lot's bids ordered by server timestamp ascending.
func (r *Repo) ListByLot(ctx context.Context, tenantID, lotID uuid.UUID) ([]domain.Bid, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"tenant_id": tenantID, "lot_id": lotID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "bid", lotID)
	}

	var rows []bidRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "bid", lotID)
	}

	bids := make([]domain.Bid, len(rows))
	for i, row := range rows {
		bids[i] = *toDomain(row)
	}
	return bids, nil
}

// VoidActiveByLots cancels every active bid on the given lots. Used by the
// auction-cancel cascade; returns the number of voided bids.
func (r *Repo) VoidActiveByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (int64, error) {
	if len(lotIDs) == 0 {
		return 0, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("bids").
		Set("status", domain.BidStatusCancelled).
		Where(sq.Eq{
			"tenant_id": tenantID,
			"lot_id":    lotIDs,
			"status":    domain.BidStatusActive,
		}).
		ToSql()
	if err != nil {
		return 0, postgres.MapError(err, "bid", uuid.Nil)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "bid", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}

func columnList() string {
	list := bidColumns[0]
	for _, c := range bidColumns[1:] {
		list += ", " + c
	}
	return list
}

func toDomain(row bidRow) *domain.Bid {
	return &domain.Bid{
		ID:              row.ID,
		LotID:           row.LotID,
		AuctionID:       row.AuctionID,
		BidderID:        row.BidderID,
		TenantID:        row.TenantID,
		Amount:          row.Amount,
		Origin:          domain.BidOrigin(row.Origin),
		Status:          domain.BidStatus(row.Status),
		IdempotencyKey:  row.IdempotencyKey,
		ClientTimestamp: row.ClientTimestamp,
		IPAddress:       row.IPAddress,
		UserAgent:       row.UserAgent,
		CreatedAt:       row.CreatedAt,
	}
}
