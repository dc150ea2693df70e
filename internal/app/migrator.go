package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/repository/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator накатывает встроенные в бинарник миграции через goose
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, logger *zap.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// Goose работает с *sql.DB поверх того же пула
	return &Migrator{
		db:     stdlib.OpenDBFromPool(pool),
		logger: logger,
	}, nil
}

// Run применяет все pending миграции
func (mg *Migrator) Run(ctx context.Context) error {
	before, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, mg.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	mg.logger.Info("Migrations applied",
		zap.Int64("from_version", before),
		zap.Int64("to_version", after),
	)
	return nil
}

// Version текущая версия схемы
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

// Close закрывает sql.DB, пул остаётся открытым
func (mg *Migrator) Close() error {
	return mg.db.Close()
}
