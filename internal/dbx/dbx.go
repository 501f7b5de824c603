// Package dbx opens the PostgreSQL pool behind gorm and runs work inside
// transactions.
package dbx

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to PostgreSQL through pgx's database/sql driver, checks the
// connection and wraps the pool in gorm with driver error translation on.
// The returned *sql.DB is the same pool; callers use it for migrations and
// must Close it on shutdown.
func Open(ctx context.Context, dsn string, cfg *gorm.Config) (*gorm.DB, *sql.DB, error) {
	sqlDB, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg == nil {
		cfg = &gorm.Config{}
	}
	// Unique violations surface as gorm.ErrDuplicatedKey.
	cfg.TranslateError = true

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, sqlDB, nil
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx *gorm.DB) error {
//	    return repos.Users(tx).Add(ctx, user)
//	})
func WithTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error, opts ...*sql.TxOptions) (err error) {
	tx := db.WithContext(ctx).Begin(opts...)
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit().Error
	}()

	err = fn(ctx, tx)
	return err
}
