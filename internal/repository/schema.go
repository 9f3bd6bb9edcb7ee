package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schema holds the DDL run at startup. "date" stays TEXT on purpose:
// the parser emits ISO strings and the validator owns format checking.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		bill_id TEXT NOT NULL,
		user_id UUID NOT NULL REFERENCES users(id),
		vendor TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT 'N/A',
		payment TEXT NOT NULL DEFAULT 'N/A',
		subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax DOUBLE PRECISION NOT NULL DEFAULT 0,
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'Uncategorized',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, bill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS receipt_items (
		user_id UUID NOT NULL,
		bill_id TEXT NOT NULL,
		position INT NOT NULL,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (user_id, bill_id, position),
		FOREIGN KEY (user_id, bill_id) REFERENCES receipts(user_id, bill_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_receipts_user_date ON receipts(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_receipts_user_vendor ON receipts(user_id, vendor)`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Info("Database schema up to date")
	return nil
}
