// Package lot implements the Lot repository using PostgreSQL.
//
// ApplyBid is the optimistic-locking primitive of the bid engine: it updates
// price/bids_count/winner_id only where both still equal the values the
// caller read, and reports whether the write landed.
package lot

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

var lotColumns = []string{
	"id", "auction_id", "tenant_id", "number", "title", "status",
	"starting_price", "price", "bids_count", "bid_increment_step",
	"end_date", "winner_id", "created_at", "updated_at",
}

type lotRow struct {
	ID               uuid.UUID       `db:"id"`
	AuctionID        uuid.UUID       `db:"auction_id"`
	TenantID         uuid.UUID       `db:"tenant_id"`
	Number           int             `db:"number"`
	Title            string          `db:"title"`
	Status           string          `db:"status"`
	StartingPrice    decimal.Decimal `db:"starting_price"`
	Price            decimal.Decimal `db:"price"`
	BidsCount        int             `db:"bids_count"`
	BidIncrementStep decimal.Decimal `db:"bid_increment_step"`
	EndDate          *time.Time      `db:"end_date"`
	WinnerID         *uuid.UUID      `db:"winner_id"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// Repo provides lot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// NextNumber reserves the next lot number of an auction by bumping its
// denormalized counter atomically. Run inside a transaction together with
// the insert or move that uses the number.
func (r *Repo) NextNumber(ctx context.Context, tenantID, auctionID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var number int
	err := q.QueryRow(ctx,
		`UPDATE auctions SET lots_count = lots_count + 1, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2
		 RETURNING lots_count`,
		auctionID, tenantID).Scan(&number)
	if err != nil {
		return 0, postgres.MapError(err, "auction", auctionID)
	}
	return number, nil
}

// Create inserts a lot in DRAFT. The caller reserves l.Number via NextNumber
// in the same transaction.
func (r *Repo) Create(ctx context.Context, l *domain.Lot) (*domain.Lot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	insert := psql.Insert("lots").
		Columns("auction_id", "tenant_id", "number", "title", "status",
			"starting_price", "price", "bid_increment_step", "end_date").
		Values(l.AuctionID, l.TenantID, l.Number, l.Title, domain.LotStatusDraft,
			l.StartingPrice, l.StartingPrice, l.BidIncrementStep, l.EndDate).
		Suffix("RETURNING " + columnList())

	sql, args, err := insert.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", uuid.Nil)
	}

	var row lotRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lot", uuid.Nil)
	}
	return toDomain(row), nil
}

// GetByID returns a lot by primary key, scoped to the tenant.
func (r *Repo) GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*domain.Lot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(lotColumns...).
		From("lots").
		Where(sq.Eq{"id": lotID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", lotID)
	}

	var row lotRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lot", lotID)
	}
	return toDomain(row), nil
}

// ListByAuction returns all lots of an auction ordered by lot number.
func (r *Repo) ListByAuction(ctx context.Context, tenantID, auctionID uuid.UUID) ([]domain.Lot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(lotColumns...).
		From("lots").
		Where(sq.Eq{"auction_id": auctionID, "tenant_id": tenantID}).
		OrderBy("number ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}

	var rows []lotRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}

	lots := make([]domain.Lot, len(rows))
	for i, row := range rows {
		lots[i] = *toDomain(row)
	}
	return lots, nil
}

// UpdateStatus performs a conditional status transition (see auction repo).
// Zero rows affected surfaces as domain.ErrConflict.
func (r *Repo) UpdateStatus(ctx context.Context, tenantID, lotID uuid.UUID, from, to domain.LotStatus, params domain.LotUpdate) (*domain.Lot, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("lots").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": lotID, "tenant_id": tenantID, "status": from}).
		Suffix("RETURNING " + columnList())

	if params.Price != nil {
		update = update.Set("price", *params.Price)
	}
	if params.WinnerID != nil {
		update = update.Set("winner_id", *params.WinnerID)
	}
	if params.AuctionID != nil {
		update = update.Set("auction_id", *params.AuctionID)
	}
	if params.Number != nil {
		update = update.Set("number", *params.Number)
	}
	if params.EndDate != nil {
		update = update.Set("end_date", *params.EndDate)
	}
	if params.ResetBidState {
		update = update.Set("bids_count", 0).Set("winner_id", nil)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", lotID)
	}

	var row lotRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrConflict
		}
		return nil, postgres.MapError(err, "lot", lotID)
	}
	return toDomain(row), nil
}

// ApplyBid records an accepted bid on the lot: price, bids_count and the
// current winner move together, conditional on the price AND bid count the
// engine just read. The count guard matters for the first bid, where the
// price stays at the starting price and cannot arbitrate the race alone.
// Returns false when zero rows were affected, i.e. a concurrent bid won.
func (r *Repo) ApplyBid(ctx context.Context, tenantID, lotID uuid.UUID, expectedPrice decimal.Decimal, expectedBids int, newPrice decimal.Decimal, winnerID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("lots").
		Set("price", newPrice).
		Set("bids_count", sq.Expr("bids_count + 1")).
		Set("winner_id", winnerID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{
			"id":         lotID,
			"tenant_id":  tenantID,
			"price":      expectedPrice,
			"bids_count": expectedBids,
			"status":     []domain.LotStatus{domain.LotStatusOpenForBids, domain.LotStatusLiveAuction},
		}).
		ToSql()
	if err != nil {
		return false, postgres.MapError(err, "lot", lotID)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "lot", lotID)
	}
	return tag.RowsAffected() == 1, nil
}

// CascadeStatus moves every lot of an auction whose status is in `from` to
// `to`, returning the affected lot IDs. Callers derive `from` from the
// transition table, so the batch write cannot bypass it.
func (r *Repo) CascadeStatus(ctx context.Context, tenantID, auctionID uuid.UUID, from []domain.LotStatus, to domain.LotStatus) ([]uuid.UUID, error) {
	if len(from) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("lots").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"auction_id": auctionID, "tenant_id": tenantID, "status": from}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, q, &ids, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}
	return ids, nil
}

// ExtendEndDate pushes a lot's end date out (soft close). Only biddable lots
// qualify; extending a finished lot is a no-op.
func (r *Repo) ExtendEndDate(ctx context.Context, tenantID, lotID uuid.UUID, newEnd time.Time) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("lots").
		Set("end_date", newEnd).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{
			"id":        lotID,
			"tenant_id": tenantID,
			"status":    []domain.LotStatus{domain.LotStatusOpenForBids, domain.LotStatusLiveAuction},
		}).
		ToSql()
	if err != nil {
		return false, postgres.MapError(err, "lot", lotID)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "lot", lotID)
	}
	return tag.RowsAffected() == 1, nil
}

// StatusCounts returns the lot-state distribution of an auction, used for
// force-close eligibility checks.
func (r *Repo) StatusCounts(ctx context.Context, tenantID, auctionID uuid.UUID) (map[domain.LotStatus]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("status", "count(*) AS count").
		From("lots").
		Where(sq.Eq{"auction_id": auctionID, "tenant_id": tenantID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lot", auctionID)
	}

	counts := make(map[domain.LotStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.LotStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func columnList() string {
	list := lotColumns[0]
	for _, c := range lotColumns[1:] {
		list += ", " + c
	}
	return list
}

func toDomain(row lotRow) *domain.Lot {
	return &domain.Lot{
		ID:               row.ID,
		AuctionID:        row.AuctionID,
		TenantID:         row.TenantID,
		Number:           row.Number,
		Title:            row.Title,
		Status:           domain.LotStatus(row.Status),
		StartingPrice:    row.StartingPrice,
		Price:            row.Price,
		BidsCount:        row.BidsCount,
		BidIncrementStep: row.BidIncrementStep,
		EndDate:          row.EndDate,
		WinnerID:         row.WinnerID,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
