package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Listing moderation states. New and edited listings wait for an admin
// before appearing in public browse results.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Property mirrors the 'properties' table.
type Property struct {
	ID           uint64
	OwnerID      uint64
	Title        string
	Description  string
	PropertyType string // apartment, house, villa, land, office
	Purpose      string // sale | rent
	Price        float64
	Currency     string
	City         string
	District     string
	AreaM2       uint32
	Bedrooms     uint8
	Bathrooms    uint8
	Lat          float64
	Lng          float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

const propertyColumns = "id, owner_id, title, description, property_type, purpose, price, currency, city, district, area_m2, bedrooms, bathrooms, lat, lng, status, created_at, updated_at"

func scanProperty(sc interface{ Scan(...interface{}) error }) (Property, error) {
	var p Property
	err := sc.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.PropertyType,
		&p.Purpose, &p.Price, &p.Currency, &p.City, &p.District, &p.AreaM2,
		&p.Bedrooms, &p.Bathrooms, &p.Lat, &p.Lng, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a listing in pending state and returns its ID.
func (r *PropertyRepo) Create(ctx context.Context, p Property) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO properties
			(owner_id, title, description, property_type, purpose, price, currency,
			 city, district, area_m2, bedrooms, bathrooms, lat, lng, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.OwnerID, p.Title, p.Description, p.PropertyType, p.Purpose, p.Price,
		p.Currency, p.City, p.District, p.AreaM2, p.Bedrooms, p.Bathrooms,
		p.Lat, p.Lng, StatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches one listing regardless of status; visibility rules live in
// the handlers.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (Property, error) {
	p, err := scanProperty(r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Property{}, ErrNotFound
	}
	return p, err
}

// Update rewrites the editable columns of the caller's own listing and
// resets it to pending for re-moderation. ErrForbidden when ownerID does not
// own the row.
func (r *PropertyRepo) Update(ctx context.Context, id, ownerID uint64, p Property) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE properties SET
			title=?, description=?, property_type=?, purpose=?, price=?, currency=?,
			city=?, district=?, area_m2=?, bedrooms=?, bathrooms=?, lat=?, lng=?, status=?
		 WHERE id=?`,
		p.Title, p.Description, p.PropertyType, p.Purpose, p.Price, p.Currency,
		p.City, p.District, p.AreaM2, p.Bedrooms, p.Bathrooms, p.Lat, p.Lng,
		StatusPending, id)
	return err
}

// Delete removes the caller's own listing. Admin deletions pass admin=true
// and skip the ownership check.
func (r *PropertyRepo) Delete(ctx context.Context, id, callerID uint64, admin bool) error {
	if !admin {
		owner, err := r.ownerOf(ctx, id)
		if err != nil {
			return err
		}
		if owner != callerID {
			return ErrForbidden
		}
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM properties WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus moves a listing through moderation (admin operation).
func (r *PropertyRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE properties SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns a seller's own listings, newest first.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]Property, error) {
	return r.list(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE owner_id=? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		ownerID, limit, offset)
}

// ListByStatus returns listings in a moderation state (admin view).
func (r *PropertyRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Property, error) {
	return r.list(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE status=? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		status, limit, offset)
}

// CountByStatus returns listing totals per moderation state.
func (r *PropertyRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM properties GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *PropertyRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT owner_id FROM properties WHERE id=? LIMIT 1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return owner, err
}

func (r *PropertyRepo) list(ctx context.Context, query string, args ...interface{}) ([]Property, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
