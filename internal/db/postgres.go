package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens the pool, pings it and makes sure the schema exists.
func ConnectPostgres(ctx context.Context, dsn string, log *slog.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres", "host", config.ConnConfig.Host)

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Info("schema initialized")
	return pool, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	// -------------------------------
	// RESTAURANTS (owned by onboarding)
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS restaurants (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		owner_id VARCHAR(255) NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE restaurants ADD COLUMN IF NOT EXISTS owner_id VARCHAR(255) NULL`,
	`CREATE INDEX IF NOT EXISTS restaurants_owner_idx ON restaurants (owner_id)`,

	// -------------------------------
	// VOICE CHANNELS (DID -> restaurant)
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS voice_channels (
		did VARCHAR(64) PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// -------------------------------
	// MENU
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS menu_items_restaurant_idx ON menu_items (restaurant_id)`,

	`CREATE TABLE IF NOT EXISTS menu_uploads (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		object_key VARCHAR(500) NOT NULL,
		original_filename VARCHAR(255) NOT NULL,
		status VARCHAR(50) NOT NULL,
		item_count INT NOT NULL DEFAULT 0,
		rejection_reason TEXT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// -------------------------------
	// ORDERS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id),
		customer_name TEXT NULL,
		customer_phone TEXT NULL,
		customer_email TEXT NULL,
		type VARCHAR(50) NOT NULL DEFAULT 'pickup',
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		source VARCHAR(20) NOT NULL DEFAULT 'voice',
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx ON orders (restaurant_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_item_id UUID NULL REFERENCES menu_items(id) ON DELETE SET NULL,
		item_name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price NUMERIC(10,2) NOT NULL DEFAULT 0,
		notes TEXT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// spoken names have no length bound
	`ALTER TABLE order_items ALTER COLUMN item_name TYPE TEXT`,
	`ALTER TABLE orders ALTER COLUMN customer_name TYPE TEXT`,
	`ALTER TABLE orders ALTER COLUMN customer_phone TYPE TEXT`,
	`ALTER TABLE orders ALTER COLUMN customer_email TYPE TEXT`,
}
