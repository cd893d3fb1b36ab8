// Package db opens the two connection pools the service talks to Postgres through.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/config"
)

// Clients holds the privileged pool used for writes and the public pool used
// for read-only views. Public connections switch to the anon role when one is
// configured; otherwise both pools point at the same pool.
type Clients struct {
	Service *pgxpool.Pool
	Public  *pgxpool.Pool
}

func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Clients, error) {
	service, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create service pool: %w", err)
	}
	if err := service.Ping(ctx); err != nil {
		service.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg.AnonRole == "" {
		logger.Warn("DATABASE_ANON_ROLE not set, read views share the service pool")
		return &Clients{Service: service, Public: service}, nil
	}

	public, err := newPublicPool(ctx, cfg.DatabaseURL, cfg.AnonRole)
	if err != nil {
		service.Close()
		return nil, err
	}
	return &Clients{Service: service, Public: public}, nil
}

func newPublicPool(ctx context.Context, dsn, role string) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	stmt := "SET ROLE " + pgx.Identifier{role}.Sanitize()
	pcfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, stmt)
		return err
	}

	public, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create public pool: %w", err)
	}
	if err := public.Ping(ctx); err != nil {
		public.Close()
		return nil, fmt.Errorf("ping database as %s: %w", role, err)
	}
	return public, nil
}

func (c *Clients) Close() {
	if c.Public != c.Service {
		c.Public.Close()
	}
	c.Service.Close()
}
