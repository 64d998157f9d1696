package restaurant

import (
	"context"
	"errors"

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
// Create a new restaurant
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, rest *Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	return r.db.QueryRow(ctx, query, rest.ID, rest.Name, rest.OwnerID).Scan(&rest.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Restaurant, error) {
	var rest Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT id::text, name, COALESCE(owner_id, ''), created_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(&rest.ID, &rest.Name, &rest.OwnerID, &rest.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// --------------------------------------------------
// Ownership check
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(
	ctx context.Context,
	restaurantID string,
	userID string,
) (bool, error) {

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM restaurants
			WHERE id = $1 AND owner_id = $2
		)
	`, restaurantID, userID).Scan(&exists)

	return exists, err
}

// --------------------------------------------------
// Voice channels
// --------------------------------------------------
func (r *PostgresRepository) AttachChannel(ctx context.Context, ch *Channel) error {
	// the update only fires for the owning restaurant, so a did held by
	// someone else comes back with no row
	var owner string
	err := r.db.QueryRow(ctx, `
		INSERT INTO voice_channels (did, restaurant_id)
		VALUES ($1, $2)
		ON CONFLICT (did) DO UPDATE
			SET did = EXCLUDED.did
			WHERE voice_channels.restaurant_id = EXCLUDED.restaurant_id
		RETURNING restaurant_id::text, created_at
	`, ch.DID, ch.RestaurantID).Scan(&owner, &ch.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrChannelTaken
	}
	return err
}

func (r *PostgresRepository) ListChannels(ctx context.Context, restaurantID string) ([]Channel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT did, restaurant_id::text, created_at
		FROM voice_channels
		WHERE restaurant_id = $1
		ORDER BY created_at
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Channel
	for rows.Next() {
		var ch Channel
		if err := rows.Scan(&ch.DID, &ch.RestaurantID, &ch.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}
