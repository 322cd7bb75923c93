package repository

import (
	"context"
	"database/sql"
	"time"
)

// FavoriteRepo persists the user->property favorites relation. The table has
// a unique (user_id, property_id) index.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// FavoriteRow is one favorited listing with the fields the favorites screen
// renders.
type FavoriteRow struct {
	PropertyID uint64    `json:"property_id"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	City       string    `json:"city"`
	Status     string    `json:"status"`
	SavedAt    time.Time `json:"saved_at"`
}

// Add favorites a property for the user. Adding twice is idempotent.
func (r *FavoriteRepo) Add(ctx context.Context, userID, propertyID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?) ON DUPLICATE KEY UPDATE property_id=property_id",
		userID, propertyID)
	return err
}

// Remove deletes the favorite row; removing a non-favorite is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, propertyID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id=? AND property_id=?",
		userID, propertyID)
	return err
}

// ListByUser returns the user's favorites, most recently saved first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]FavoriteRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT f.property_id, p.title, p.price, p.currency, p.city, p.status, f.created_at
		 FROM favorites f
		 JOIN properties p ON p.id = f.property_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FavoriteRow
	for rows.Next() {
		var fr FavoriteRow
		if err := rows.Scan(&fr.PropertyID, &fr.Title, &fr.Price, &fr.Currency,
			&fr.City, &fr.Status, &fr.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}
