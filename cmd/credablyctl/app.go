package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/credably/adapters/persistence"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/user"
	"github.com/khoahotran/credably/pkg/logger"
)

// app holds what every subcommand needs. Close releases the pool.
type app struct {
	cfg config.Config
	log logger.Logger
	db  *pgxpool.Pool
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	db, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) Close() {
	a.db.Close()
	a.log.Sync()
}

func (a *app) findUser(ctx context.Context, email string) (*user.User, error) {
	return persistence.NewPostgresUserRepo(a.db, a.log).FindByEmail(ctx, email)
}
