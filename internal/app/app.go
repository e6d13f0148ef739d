// Package app wires configuration, storage, caches and the event sink into
// the service layer. It owns no business logic: embedding hosts construct a
// Core and call the services directly.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hammerhouse/auction-backend/internal/adapter/events"
	"github.com/hammerhouse/auction-backend/internal/adapter/events/rabbitmq"
	"github.com/hammerhouse/auction-backend/internal/adapter/postgres"
	auditrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/audit"
	auctionrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/auction"
	autobidrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/autobid"
	bidrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/bid"
	lotrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/lot"
	settingsrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/settings"
	userrepo "github.com/hammerhouse/auction-backend/internal/adapter/postgres/user"
	"github.com/hammerhouse/auction-backend/internal/cache"
	"github.com/hammerhouse/auction-backend/internal/config"
	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/internal/service/auction"
	"github.com/hammerhouse/auction-backend/internal/service/bidding"
	"github.com/hammerhouse/auction-backend/internal/service/lot"
	"github.com/hammerhouse/auction-backend/internal/service/settings"
)

// eventSink is the broadcast surface consumed by the bid engine.
type eventSink interface {
	EmitBid(ctx context.Context, e domain.BidEvent) error
	EmitSoftClose(ctx context.Context, e domain.SoftCloseEvent) error
}

// Core bundles the fully wired auction services over one connection pool.
type Core struct {
	Pool     *pgxpool.Pool
	Auctions *auction.Service
	Lots     *lot.Service
	Bidding  *bidding.Service
	Settings *settings.Service
	Audit    *auditrepo.Repo

	closers []io.Closer
}

// NewCore connects to the database and constructs the service graph.
func NewCore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Core, error) {
	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	core := &Core{Pool: pool}

	auctions := auctionrepo.New(pool)
	lots := lotrepo.New(pool)
	bids := bidrepo.New(pool)
	autobids := autobidrepo.New(pool)
	users := userrepo.New(pool)
	audit := auditrepo.New(pool)
	tenantSettings := settingsrepo.New(pool)
	tx := postgres.NewTxManager(pool, cfg.Bidding.TxTimeout)

	settingsCache, err := core.newCache(ctx, cfg.Cache)
	if err != nil {
		pool.Close()
		return nil, err
	}

	sink, err := core.newEventSink(cfg.Events, log)
	if err != nil {
		core.Close()
		return nil, err
	}

	core.Audit = audit
	core.Settings = settings.NewService(log, tenantSettings, settingsCache, cfg.Cache.TTL)
	core.Lots = lot.NewService(log, lots, auctions, users, bids, audit, tx,
		cfg.Bidding.AutoFinalizeAuctions)
	core.Auctions = auction.NewService(log, auctions, core.Lots, bids, audit, tx)
	core.Lots.SetAuctionMachine(func(ctx context.Context, auctionID uuid.UUID) error {
		_, err := core.Auctions.ForceClose(ctx, auction.AuctionIDInput{AuctionID: auctionID})
		return err
	})
	core.Bidding = bidding.NewService(log, lots, auctions, bids, autobids, users,
		core.Settings, audit, tx, sink, cfg.Bidding)

	return core, nil
}

// Close releases the pool and any adapters holding connections.
func (c *Core) Close() {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			slog.Warn("close adapter", "error", err)
		}
	}
	c.Pool.Close()
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (c *Core) newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		c.closers = append(c.closers, r)
		return r, nil
	default:
		return cache.NewMemory(), nil
	}
}

func (c *Core) newEventSink(cfg config.EventsConfig, log *slog.Logger) (eventSink, error) {
	if !cfg.Enabled {
		return events.NoopSink{}, nil
	}
	pub, err := rabbitmq.NewPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, fmt.Errorf("connect event broker: %w", err)
	}
	c.closers = append(c.closers, pub)
	log.Info("event broadcasting enabled", "exchange", cfg.Exchange)
	return pub, nil
}
