package repository

import (
	"context"
	"strings"
)

// PropertySearchQuery defines filters & pagination for the public browse API.
// Only approved listings are searched.
type PropertySearchQuery struct {
	City     string
	District string
	Type     string
	Purpose  string
	MinPrice float64
	MaxPrice float64
	Bedrooms int
	Page     int
	PageSize int
}

// PublicPropertyRow is one public search result joined with the seller's
// public contact fields.
type PublicPropertyRow struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title"`
	PropertyType string  `json:"property_type"`
	Purpose      string  `json:"purpose"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	City         string  `json:"city"`
	District     string  `json:"district"`
	AreaM2       uint32  `json:"area_m2"`
	Bedrooms     uint8   `json:"bedrooms"`
	Bathrooms    uint8   `json:"bathrooms"`
	OwnerID      uint64  `json:"owner_id"`
	OwnerName    string  `json:"owner_name"`
	CreatedAt    string  `json:"created_at"`
}

// Search returns one page of approved listings matching q plus the total
// match count for pagination.
func (r *PropertyRepo) Search(ctx context.Context, q PropertySearchQuery) ([]PublicPropertyRow, int64, error) {
	where := []string{"p.status = ?"}
	args := []any{StatusApproved}

	if q.City != "" {
		where = append(where, "LOWER(p.city) = ?")
		args = append(args, strings.ToLower(q.City))
	}
	if q.District != "" {
		where = append(where, "LOWER(p.district) = ?")
		args = append(args, strings.ToLower(q.District))
	}
	if q.Type != "" {
		where = append(where, "p.property_type = ?")
		args = append(args, q.Type)
	}
	if q.Purpose != "" {
		where = append(where, "p.purpose = ?")
		args = append(args, q.Purpose)
	}
	if q.MinPrice > 0 {
		where = append(where, "p.price >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, "p.price <= ?")
		args = append(args, q.MaxPrice)
	}
	if q.Bedrooms > 0 {
		where = append(where, "p.bedrooms >= ?")
		args = append(args, q.Bedrooms)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM properties p
		WHERE ` + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			p.id,
			p.title,
			p.property_type,
			p.purpose,
			p.price,
			p.currency,
			p.city,
			p.district,
			p.area_m2,
			p.bedrooms,
			p.bathrooms,
			p.owner_id,
			u.full_name AS owner_name,
			DATE_FORMAT(p.created_at, '%Y-%m-%d %T') AS created_at
		FROM properties p
		JOIN users u ON u.id = p.owner_id
		WHERE ` + cond + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicPropertyRow, 0, limit)
	for rows.Next() {
		var d PublicPropertyRow
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.PropertyType,
			&d.Purpose,
			&d.Price,
			&d.Currency,
			&d.City,
			&d.District,
			&d.AreaM2,
			&d.Bedrooms,
			&d.Bathrooms,
			&d.OwnerID,
			&d.OwnerName,
			&d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
