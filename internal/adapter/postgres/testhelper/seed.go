package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedTenant creates a tenant with default settings and returns its ID.
func SeedTenant(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	tenantID := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO tenants (id, name) VALUES ($1, $2)`,
		tenantID, "Test House "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTenant insert tenant: %v", err)
	}

	s := domain.DefaultTenantSettings(tenantID)
	_, err = pool.Exec(ctx,
		`INSERT INTO tenant_settings (tenant_id, idempotency_strategy, soft_close_enabled,
		     soft_close_trigger_minutes, soft_close_extension_minutes)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.TenantID, s.IdempotencyStrategy, s.SoftCloseEnabled,
		s.SoftCloseTriggerMinutes, s.SoftCloseExtensionMinutes,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTenant insert tenant_settings: %v", err)
	}

	return tenantID
}

// SeedUser creates a user within the tenant and returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, tenantID uuid.UUID) domain.User {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:          uuid.New(),
		TenantID:    tenantID,
		DisplayName: "Test Bidder " + uniqueSuffix(),
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, tenant_id, display_name, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.TenantID, user.DisplayName, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedAuction creates an auction in the given status and returns it.
func SeedAuction(t *testing.T, pool *pgxpool.Pool, tenantID uuid.UUID, status domain.AuctionStatus) domain.Auction {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Auction{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Title:       "Test Auction " + uniqueSuffix(),
		Description: "Seeded auction with enough description to submit",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO auctions (id, tenant_id, title, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.TenantID, a.Title, a.Description, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAuction insert auction: %v", err)
	}

	return a
}

// LotParams controls optional fields of a seeded lot. Zero values fall back
// to sensible defaults (starting price 100.00, increment 5.00, no bids).
type LotParams struct {
	StartingPrice decimal.Decimal
	Price         decimal.Decimal
	Increment     decimal.Decimal
	BidsCount     int
	EndDate       *time.Time
	WinnerID      *uuid.UUID
}

// SeedLot creates a lot under the auction in the given status and returns it.
// The lot number is picked from the auction's current lots_count, which is
// incremented as real lot creation does.
func SeedLot(t *testing.T, pool *pgxpool.Pool, auction domain.Auction, status domain.LotStatus, params LotParams) domain.Lot {
	t.Helper()
	ctx := context.Background()

	if params.StartingPrice.IsZero() {
		params.StartingPrice = decimal.NewFromInt(100)
	}
	if params.Price.IsZero() {
		params.Price = params.StartingPrice
	}
	if params.Increment.IsZero() {
		params.Increment = decimal.NewFromInt(5)
	}

	var number int
	err := pool.QueryRow(ctx,
		`UPDATE auctions SET lots_count = lots_count + 1 WHERE id = $1 RETURNING lots_count`,
		auction.ID,
	).Scan(&number)
	if err != nil {
		t.Fatalf("testhelper: SeedLot bump lots_count: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	lot := domain.Lot{
		ID:               uuid.New(),
		AuctionID:        auction.ID,
		TenantID:         auction.TenantID,
		Number:           number,
		Title:            "Lot " + uniqueSuffix(),
		Status:           status,
		StartingPrice:    params.StartingPrice,
		Price:            params.Price,
		BidsCount:        params.BidsCount,
		BidIncrementStep: params.Increment,
		EndDate:          params.EndDate,
		WinnerID:         params.WinnerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO lots (id, auction_id, tenant_id, number, title, status, starting_price,
		     price, bids_count, bid_increment_step, end_date, winner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		lot.ID, lot.AuctionID, lot.TenantID, lot.Number, lot.Title, string(lot.Status),
		lot.StartingPrice, lot.Price, lot.BidsCount, lot.BidIncrementStep,
		lot.EndDate, lot.WinnerID, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLot insert lot: %v", err)
	}

	return lot
}

// SeedBid creates an active manual bid on the lot and returns it. The lot's
// price and bids_count are not touched; tests that need a consistent lot row
// seed it through LotParams.
func SeedBid(t *testing.T, pool *pgxpool.Pool, lot domain.Lot, bidderID uuid.UUID, amount decimal.Decimal) domain.Bid {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	bid := domain.Bid{
		ID:        uuid.New(),
		LotID:     lot.ID,
		AuctionID: lot.AuctionID,
		BidderID:  bidderID,
		TenantID:  lot.TenantID,
		Amount:    amount,
		Origin:    domain.BidOriginManual,
		Status:    domain.BidStatusActive,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bids (id, lot_id, auction_id, bidder_id, tenant_id, amount, origin, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		bid.ID, bid.LotID, bid.AuctionID, bid.BidderID, bid.TenantID,
		bid.Amount, string(bid.Origin), string(bid.Status), bid.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBid insert bid: %v", err)
	}

	return bid
}

// SeedAutoBid creates an active auto-bid intent for the user on the lot.
func SeedAutoBid(t *testing.T, pool *pgxpool.Pool, lot domain.Lot, userID uuid.UUID, maxAmount decimal.Decimal) domain.AutoBid {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	ab := domain.AutoBid{
		ID:        uuid.New(),
		LotID:     lot.ID,
		UserID:    userID,
		TenantID:  lot.TenantID,
		MaxAmount: maxAmount,
		Active:    true,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO auto_bids (id, lot_id, user_id, tenant_id, max_amount, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ab.ID, ab.LotID, ab.UserID, ab.TenantID, ab.MaxAmount, ab.Active, ab.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAutoBid insert auto_bid: %v", err)
	}

	return ab
}
