package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

func TestCleanBody(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		wantBody string
		wantKey  string
	}{
		{"empty", "", "", "comments.empty"},
		{"whitespace only", " \t\n ", "", "comments.empty"},
		{"latin digits only", "0123456789", "", "comments.digits"},
		{"arabic-indic digits only", "٠١٢٣٤٥٦٧٨٩", "", "comments.digits"},
		{"eastern digits only", "۰۱۲۳۴۵۶۷۸۹", "", "comments.digits"},
		{"digits and spaces only", " ٥٥٥ 123 ۴۴ ", "", "comments.digits"},
		{"plain text passes", "Nice place near the park", "Nice place near the park", ""},
		{"latin phone stripped", "Call me at 0501234567 tonight", "Call me at  tonight", ""},
		{"arabic-indic phone stripped", "اتصل بي ٠٥٠١٢٣٤٥٦٧", "اتصل بي", ""},
		{"eastern digits stripped", "شماره ۰۹۱۲۳ تماس", "شماره  تماس", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, key := cleanBody(tc.in)
			if body != tc.wantBody || key != tc.wantKey {
				t.Fatalf("cleanBody(%q) = (%q, %q); want (%q, %q)",
					tc.in, body, key, tc.wantBody, tc.wantKey)
			}
		})
	}
}

// staticLanguages serves a fixed language configuration so handler tests do
// not need a database behind the i18n store.
type staticLanguages struct{}

func (staticLanguages) EnabledLanguages(context.Context) ([]string, string, error) {
	return []string{"en"}, "en", nil
}

func (staticLanguages) Overrides(context.Context) (map[string]map[string]string, error) {
	return map[string]map[string]string{}, nil
}

const propertyByIDQuery = "SELECT id, owner_id, title, description, property_type, purpose, price, currency, city, district, area_m2, bedrooms, bathrooms, lat, lng, status, created_at, updated_at FROM properties WHERE id=? LIMIT 1"

func propertyRow(id, ownerID uint64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(strings.Split(
		"id,owner_id,title,description,property_type,purpose,price,currency,city,district,area_m2,bedrooms,bathrooms,lat,lng,status,created_at,updated_at", ",")).
		AddRow(id, ownerID, "Flat", "Two rooms", "apartment", "rent",
			1500.0, "USD", "Riyadh", "Olaya", 90, 2, 1, 0.0, 0.0, status, now, now)
}

func newReplyContext(t *testing.T, parentID string, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"body":"still available?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(parentID)
	c.Set("user_id", uid)
	return c, rec
}

func TestReplyRefusedOnUnapprovedListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewCommentHandler(
		repository.NewCommentRepo(db),
		repository.NewPropertyRepo(db),
		repository.NewUserRepo(db),
		i18n.NewStore(staticLanguages{}, time.Minute),
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT property_id FROM comments WHERE id=? LIMIT 1")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta(propertyByIDQuery)).
		WithArgs(uint64(21)).
		WillReturnRows(propertyRow(21, 3, repository.StatusRejected))

	c, rec := newReplyContext(t, "9", 7)
	if err := h.Reply(c); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("reply under rejected listing: status %d, want %d", rec.Code, http.StatusNotFound)
	}
	// The gate must short-circuit before any INSERT.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestReplyInsertsOnApprovedListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewCommentHandler(
		repository.NewCommentRepo(db),
		repository.NewPropertyRepo(db),
		repository.NewUserRepo(db),
		i18n.NewStore(staticLanguages{}, time.Minute),
	)

	parentQuery := regexp.QuoteMeta("SELECT property_id FROM comments WHERE id=? LIMIT 1")
	mock.ExpectQuery(parentQuery).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta(propertyByIDQuery)).
		WithArgs(uint64(21)).
		WillReturnRows(propertyRow(21, 7, repository.StatusApproved))
	mock.ExpectQuery(parentQuery).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments (property_id, user_id, body, parent_comment_id) VALUES (?,?,?,?)")).
		WithArgs(uint64(21), uint64(7), "still available?", uint64(9)).
		WillReturnResult(sqlmock.NewResult(42, 1))

	// Commenter owns the listing, so no notification leaves the handler.
	c, rec := newReplyContext(t, "9", 7)
	if err := h.Reply(c); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("reply under approved listing: status %d, want %d", rec.Code, http.StatusCreated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}
