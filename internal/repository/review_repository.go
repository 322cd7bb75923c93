package repository

import (
	"context"
	"database/sql"
	"time"
)

// Review mirrors the 'reviews' table joined with the author's public name.
// One review per user per property, enforced by a unique index.
type Review struct {
	ID         uint64    `json:"id"`
	PropertyID uint64    `json:"property_id"`
	UserID     uint64    `json:"user_id"`
	Stars      int       `json:"stars"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review. A second review from the same user for the same
// property trips the unique index and returns ErrDuplicate.
func (r *ReviewRepo) Create(ctx context.Context, propertyID, userID uint64, stars int, title, body string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (property_id, user_id, stars, title, body) VALUES (?,?,?,?,?)",
		propertyID, userID, stars, title, body)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByProperty returns a property's reviews newest first plus the average
// star rating across all of them.
func (r *ReviewRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]Review, float64, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.property_id, r.user_id, r.stars, r.title, r.body, u.full_name, r.created_at
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.property_id = ?
		 ORDER BY r.created_at DESC`,
		propertyID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Review
		total int
	)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.PropertyID, &rv.UserID, &rv.Stars,
			&rv.Title, &rv.Body, &rv.AuthorName, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		total += rv.Stars
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	avg := 0.0
	if len(out) > 0 {
		avg = float64(total) / float64(len(out))
	}
	return out, avg, nil
}

// Delete removes a review; the author or an admin may delete it.
func (r *ReviewRepo) Delete(ctx context.Context, id, userID uint64, admin bool) error {
	var author uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM reviews WHERE id=? LIMIT 1", id).Scan(&author)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !admin && author != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	return err
}

// Count returns the total number of reviews (dashboard stat).
func (r *ReviewRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&n)
	return n, err
}
