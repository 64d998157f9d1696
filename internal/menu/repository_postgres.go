package menu

import (
	"context"

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
// REPLACE MENU (ATOMIC, SAFE)
// --------------------------------------------------
func (r *PostgresRepository) ReplaceItems(
	ctx context.Context,
	restaurantID string,
	items []Item,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// order lines keep their history; menu_item_id is set null on delete
	if _, err := tx.Exec(ctx, `
		DELETE FROM menu_items
		WHERE restaurant_id = $1
	`, restaurantID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].RestaurantID = restaurantID

		batch.Queue(`
			INSERT INTO menu_items (
				id,
				restaurant_id,
				name,
				category,
				price,
				position
			)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			items[i].ID,
			restaurantID,
			items[i].Name,
			items[i].Category,
			items[i].Price,
			i,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range items {
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

// --------------------------------------------------
// LIST MENU
// --------------------------------------------------
func (r *PostgresRepository) ListItems(
	ctx context.Context,
	restaurantID string,
) ([]Item, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id::text, restaurant_id::text, name, category, price
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY position, created_at
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.RestaurantID,
			&it.Name,
			&it.Category,
			&it.Price,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// UPLOAD LOG
// --------------------------------------------------
func (r *PostgresRepository) RecordUpload(ctx context.Context, u *Upload) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	var reason *string
	if u.Reason != "" {
		reason = &u.Reason
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_uploads (
			id,
			restaurant_id,
			object_key,
			original_filename,
			status,
			item_count,
			rejection_reason
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		u.ID,
		u.RestaurantID,
		u.ObjectKey,
		u.Filename,
		u.Status,
		u.ItemCount,
		reason,
	).Scan(&u.CreatedAt)
}
