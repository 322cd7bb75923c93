package repository

import (
	"context"
	"database/sql"
	"time"
)

// Notification mirrors the 'notifications' table. Rows are produced by the
// queue consumer when someone comments on a listing; Preview carries the
// truncated comment body.
type Notification struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"-"`
	Kind       string    `json:"kind"`
	PropertyID uint64    `json:"property_id"`
	CommentID  uint64    `json:"comment_id"`
	ActorID    uint64    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Preview    string    `json:"preview"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts one notification row for userID.
func (r *NotificationRepo) Create(ctx context.Context, n Notification) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notifications (user_id, kind, property_id, comment_id, actor_id, actor_name, preview)
		 VALUES (?,?,?,?,?,?,?)`,
		n.UserID, n.Kind, n.PropertyID, n.CommentID, n.ActorID, n.ActorName, n.Preview)
	return err
}

// ListByUser returns the user's notifications newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, kind, property_id, comment_id, actor_id, actor_name, preview, is_read, created_at
		 FROM notifications
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.PropertyID, &n.CommentID,
			&n.ActorID, &n.ActorName, &n.Preview, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UnreadCount returns how many notifications the user has not read yet.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id=? AND is_read=0", userID).Scan(&n)
	return n, err
}

// MarkRead flags one of the user's notifications as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flags every notification of the user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE user_id=? AND is_read=0", userID)
	return err
}
