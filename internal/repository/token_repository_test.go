package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestValidateRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewTokenRepo(db)

	// Liveness is filtered in SQL, so a live session is exactly one row.
	mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
		WithArgs("livehash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
		WithArgs("deadhash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	uid, err := repo.ValidateRefresh(context.Background(), "livehash")
	if err != nil || uid != 7 {
		t.Fatalf("live session: got %d, %v; want 7, nil", uid, err)
	}
	if _, err := repo.ValidateRefresh(context.Background(), "deadhash"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("revoked or expired session: got %v, want sql.ErrNoRows", err)
	}
}

func TestRevokeByHashOnlyLiveRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL")).
		WithArgs("somehash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RevokeByHash(context.Background(), "somehash"); err != nil {
		t.Fatalf("RevokeByHash: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}
