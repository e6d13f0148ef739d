//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hammerhouse/auction-backend/internal/adapter/events"
	"github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	auctionrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/auction"
	auditrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/audit"
	autobidrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/autobid"
	bidrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/bid"
	lotrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/lot"
	settingsrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/settings"
	"github.com/hammerhouse/auction-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/user"
	"github.com/hammerhouse/auction-backend/internal/cache"
	"github.com/hammerhouse/auction-backend/internal/config"
	"github.com/hammerhouse/auction-backend/internal/service/auction"
	"github.com/hammerhouse/auction-backend/internal/service/bidding"
	"github.com/hammerhouse/auction-backend/internal/service/lot"
	"github.com/hammerhouse/auction-backend/internal/service/settings"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// testCore is the fully wired service graph over a real database. It mirrors
// app.NewCore but swaps the event sink for a no-op and the cache for memory.
type testCore struct {
	Pool     *pgxpool.Pool
	Auctions *auction.Service
	Lots     *lot.Service
	Bidding  *bidding.Service
	Settings *settings.Service
	Audit    *auditrepo.Repo
}

func newTestCore(t *testing.T) *testCore {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	log := slog.New(slog.DiscardHandler)
	tx := postgres.NewTxManager(pool, 10*time.Second)

	auctions := auctionrepo.New(pool)
	lots := lotrepo.New(pool)
	bids := bidrepo.New(pool)
	autobids := autobidrepo.New(pool)
	users := userrepo.New(pool)
	audit := auditrepo.New(pool)

	core := &testCore{Pool: pool, Audit: audit}

	core.Settings = settings.NewService(log, settingsrepo.New(pool), cache.NewMemory(), time.Minute)
	core.Lots = lot.NewService(log, lots, auctions, users, bids, audit, tx, true)
	core.Auctions = auction.NewService(log, auctions, core.Lots, bids, audit, tx)
	core.Lots.SetAuctionMachine(func(ctx context.Context, auctionID uuid.UUID) error {
		_, err := core.Auctions.ForceClose(ctx, auction.AuctionIDInput{AuctionID: auctionID})
		return err
	})

	core.Bidding = bidding.NewService(log, lots, auctions, bids, autobids, users, core.Settings,
		audit, tx, events.NoopSink{}, config.BiddingConfig{
			TxTimeout:           10 * time.Second,
			IdempotencyStrategy: "SERVER_HASH",
			IdempotencyBucket:   10 * time.Second,
			AutoBidEnabled:      true,
			SoftCloseEnabled:    true,
		})

	return core
}

// authCtx builds a context carrying the tenant and an acting user, the way
// the transport layer would after authentication.
func authCtx(tenantID, actorID uuid.UUID) context.Context {
	ctx := ctxutil.WithTenantID(context.Background(), tenantID)
	return ctxutil.WithActorID(ctx, actorID)
}
