package db

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestConnectPostgres_MissingDSN(t *testing.T) {
	if _, err := ConnectPostgres(context.Background(), "", slog.Default()); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestSchemaCoversOrderTables(t *testing.T) {
	all := strings.Join(schema, "\n")
	for _, table := range []string{"voice_channels", "menu_items", "orders", "order_items", "menu_uploads"} {
		if !strings.Contains(all, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("schema is missing %s", table)
		}
	}
}

func TestSchemaUnboundedOrderText(t *testing.T) {
	all := strings.Join(schema, "\n")
	for _, col := range []string{"item_name TEXT", "customer_name TEXT", "customer_phone TEXT"} {
		if !strings.Contains(all, col) {
			t.Errorf("schema should declare %s", col)
		}
	}
	if strings.Contains(all, "item_name VARCHAR") {
		t.Error("item_name must not be length bounded")
	}
}

func TestSchemaRecordsRestaurantOwner(t *testing.T) {
	all := strings.Join(schema, "\n")
	if !strings.Contains(all, "ADD COLUMN IF NOT EXISTS owner_id") {
		t.Error("restaurants.owner_id missing from schema")
	}
}

// TestConnectPostgres_Integration runs against a real database when one is configured.
func TestConnectPostgres_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := ConnectPostgres(context.Background(), dsn, slog.Default())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	pool.Close()
}
