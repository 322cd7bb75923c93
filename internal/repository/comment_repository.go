package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Comment mirrors the 'comments' table joined with the author's public
// fields. ParentID is nil for top-level comments. Rows are insert-only:
// there is no edit path and deletes remove a single row without cascading.
type Comment struct {
	ID           uint64
	PropertyID   uint64
	UserID       uint64
	Body         string
	ParentID     *uint64
	AuthorName   string
	AuthorAvatar sql.NullString
	CreatedAt    time.Time
}

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// ListByProperty returns all comments for a property ordered by creation
// time ascending, each carrying its author's name and avatar. The flat rows
// feed BuildForest; the tree is always rebuilt from a fresh fetch.
func (r *CommentRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.property_id, c.user_id, c.body, c.parent_comment_id,
			u.full_name, u.avatar_url, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.property_id = ?
		 ORDER BY c.created_at ASC, c.id ASC`,
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var (
			cm       Comment
			parentID sql.NullInt64
		)
		if err := rows.Scan(&cm.ID, &cm.PropertyID, &cm.UserID, &cm.Body,
			&parentID, &cm.AuthorName, &cm.AuthorAvatar, &cm.CreatedAt); err != nil {
			return nil, err
		}
		if parentID.Valid {
			p := uint64(parentID.Int64)
			cm.ParentID = &p
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

// Create inserts a top-level comment and returns its ID.
func (r *CommentRepo) Create(ctx context.Context, propertyID, userID uint64, body string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (property_id, user_id, body) VALUES (?,?,?)",
		propertyID, userID, body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// PropertyOf returns the property a comment belongs to, ErrNotFound when
// the comment does not exist. Reply handlers use it to re-check the
// listing's moderation state before inserting.
func (r *CommentRepo) PropertyOf(ctx context.Context, id uint64) (uint64, error) {
	var propertyID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT property_id FROM comments WHERE id=? LIMIT 1", id).Scan(&propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return propertyID, nil
}

// CreateReply inserts a reply under parentID. The parent must exist; the
// reply lands on the parent's property so a reply can never cross listings.
// Cycles cannot form because the parent always pre-exists (insert-only, no
// re-parenting).
func (r *CommentRepo) CreateReply(ctx context.Context, parentID, userID uint64, body string) (uint64, uint64, error) {
	var propertyID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT property_id FROM comments WHERE id=? LIMIT 1", parentID).Scan(&propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (property_id, user_id, body, parent_comment_id) VALUES (?,?,?,?)",
		propertyID, userID, body, parentID)
	if err != nil {
		return 0, 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, 0, err
	}
	return uint64(id), propertyID, nil
}

// Delete removes a single comment row. Only the author may delete; children
// are left in place (they drop out of the rendered tree because no root
// reaches them).
func (r *CommentRepo) Delete(ctx context.Context, id, userID uint64) error {
	var author uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM comments WHERE id=? LIMIT 1", id).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if author != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	return err
}

// Count returns the total number of comments (dashboard stat).
func (r *CommentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&n)
	return n, err
}
