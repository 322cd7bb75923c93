package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

const commentAuthorQuery = "SELECT user_id FROM comments WHERE id=? LIMIT 1"

func newCommentMock(t *testing.T) (*CommentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCommentRepo(db), mock
}

func TestCommentDeleteRejectsNonAuthor(t *testing.T) {
	repo, mock := newCommentMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(commentAuthorQuery)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	err := repo.Delete(context.Background(), 5, 9)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete by non-author: got %v, want ErrForbidden", err)
	}
	// No DELETE may have been issued for someone else's comment.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestCommentDeleteByAuthor(t *testing.T) {
	repo, mock := newCommentMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(commentAuthorQuery)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5, 9); err != nil {
		t.Fatalf("Delete by author: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestCommentDeleteMissing(t *testing.T) {
	repo, mock := newCommentMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(commentAuthorQuery)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	if err := repo.Delete(context.Background(), 404, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing comment: got %v, want ErrNotFound", err)
	}
}

func TestPropertyOf(t *testing.T) {
	repo, mock := newCommentMock(t)

	query := regexp.QuoteMeta("SELECT property_id FROM comments WHERE id=? LIMIT 1")
	mock.ExpectQuery(query).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(21))
	mock.ExpectQuery(query).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}))

	got, err := repo.PropertyOf(context.Background(), 3)
	if err != nil || got != 21 {
		t.Fatalf("PropertyOf(3) = %d, %v; want 21, nil", got, err)
	}
	if _, err := repo.PropertyOf(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("PropertyOf missing comment: got %v, want ErrNotFound", err)
	}
}
