package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Menu snapshot (read only, owned by the menu module)
// --------------------------------------------------
func (r *PostgresRepository) GetMenu(
	ctx context.Context,
	restaurantID string,
) ([]MenuEntry, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id::text, name, price
		FROM menu_items
		WHERE restaurant_id = $1
		  AND available
		ORDER BY position, created_at
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menu []MenuEntry
	for rows.Next() {
		var m MenuEntry
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			return nil, err
		}
		menu = append(menu, m)
	}

	return menu, rows.Err()
}

// --------------------------------------------------
// Channel lookup (DID -> restaurant)
// --------------------------------------------------
func (r *PostgresRepository) GetChannelRestaurant(
	ctx context.Context,
	did string,
) (string, error) {

	var restaurantID string
	err := r.db.QueryRow(ctx, `
		SELECT restaurant_id::text
		FROM voice_channels
		WHERE did = $1
	`, did).Scan(&restaurantID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrChannelNotFound
		}
		return "", err
	}
	return restaurantID, nil
}

// --------------------------------------------------
// Order header
// --------------------------------------------------
func (r *PostgresRepository) InsertOrder(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id,
			restaurant_id,
			customer_name,
			customer_phone,
			customer_email,
			type,
			status,
			source,
			total_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`,
		o.ID,
		o.RestaurantID,
		nullIfEmpty(o.CustomerName),
		nullIfEmpty(o.CustomerPhone),
		nullIfEmpty(o.CustomerEmail),
		o.Type,
		o.Status,
		o.Source,
		o.TotalAmount,
	).Scan(&o.CreatedAt)
}

// --------------------------------------------------
// Order lines (all or nothing)
// --------------------------------------------------
func (r *PostgresRepository) InsertOrderLines(
	ctx context.Context,
	orderID string,
	lines []ResolvedLine,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO order_items (
				id,
				order_id,
				menu_item_id,
				item_name,
				quantity,
				unit_price,
				notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			uuid.New().String(),
			orderID,
			l.MenuItemID,
			l.ItemName,
			l.Quantity,
			l.UnitPrice,
			nullIfEmpty(l.Notes),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, orderID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	return err
}

// --------------------------------------------------
// Status
// --------------------------------------------------
func (r *PostgresRepository) GetOrderRestaurant(ctx context.Context, orderID string) (string, error) {
	var restaurantID string
	err := r.db.QueryRow(ctx, `
		SELECT restaurant_id::text
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&restaurantID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	return restaurantID, err
}

func (r *PostgresRepository) UpdateStatus(
	ctx context.Context,
	orderID string,
	status string,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = now()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing (newest first, lines attached)
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]*Order, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			o.id::text,
			o.restaurant_id::text,
			COALESCE(o.customer_name, ''),
			COALESCE(o.customer_phone, ''),
			COALESCE(o.customer_email, ''),
			o.type,
			o.status,
			o.source,
			o.total_amount,
			o.created_at,
			oi.menu_item_id::text,
			oi.item_name,
			oi.quantity,
			oi.unit_price,
			oi.notes
		FROM orders o
		LEFT JOIN order_items oi
		  ON oi.order_id = o.id
		WHERE o.restaurant_id = $1
		ORDER BY o.created_at DESC, oi.created_at
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := map[string]*Order{}

	for rows.Next() {
		var (
			o         Order
			createdAt time.Time
			menuID    *string
			itemName  *string
			quantity  *int
			unitPrice *float64
			notes     *string
		)
		if err := rows.Scan(
			&o.ID,
			&o.RestaurantID,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.CustomerEmail,
			&o.Type,
			&o.Status,
			&o.Source,
			&o.TotalAmount,
			&createdAt,
			&menuID,
			&itemName,
			&quantity,
			&unitPrice,
			&notes,
		); err != nil {
			return nil, err
		}

		cur, ok := byID[o.ID]
		if !ok {
			o.CreatedAt = createdAt
			cur = &o
			byID[o.ID] = cur
			orders = append(orders, cur)
		}

		if itemName == nil {
			continue
		}
		line := ResolvedLine{
			MenuItemID: menuID,
			ItemName:   *itemName,
		}
		if quantity != nil {
			line.Quantity = *quantity
		}
		if unitPrice != nil {
			line.UnitPrice = *unitPrice
		}
		if notes != nil {
			line.Notes = *notes
		}
		cur.Lines = append(cur.Lines, line)
	}

	return orders, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
