package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/realestate-listing/internal/utils"
)

// Account roles as stored in users.role. The middle three are the
// seller-like roles allowed to publish listings.
const (
	RoleClient           = "CLIENT"
	RoleAgent            = "AGENT"
	RolePropertyOwner    = "PROPERTY_OWNER"
	RoleRealEstateOffice = "REAL_ESTATE_OFFICE"
	RoleAdmin            = "ADMIN"
)

// SellerRoles lists the roles that own property listings.
func SellerRoles() []string {
	return []string{RoleAgent, RolePropertyOwner, RoleRealEstateOffice}
}

// User mirrors the 'users' table. WhatsApp is nullable because only
// seller-like accounts are required to provide one.
type User struct {
	ID           uint64
	FullName     string
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Whatsapp     sql.NullString
	Role         string
	Language     sql.NullString
	AvatarURL    sql.NullString
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NewUser carries the validated signup fields into Create.
type NewUser struct {
	FullName string
	Username string
	Email    string
	Password string
	Phone    string
	Whatsapp string
	Role     string
}

const userColumns = "id, full_name, username, email, password_hash, phone, whatsapp, role, language, avatar_url, is_active, created_at, updated_at"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Whatsapp, &u.Role, &u.Language, &u.AvatarURL,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a profile and returns its ID. Username and email are
// stored lowercased so the unique indexes enforce case-insensitive
// uniqueness. A duplicate-key violation maps to a DuplicateError naming the
// colliding column: the client-side checks are fail-open, so the index is
// the authoritative line and the handler needs to know which field lost.
func (r *UserRepo) Create(ctx context.Context, nu NewUser, cost int) (uint64, error) {
	hash, err := utils.HashPassword(nu.Password, cost)
	if err != nil {
		return 0, err
	}
	var whatsapp interface{}
	if s := strings.TrimSpace(nu.Whatsapp); s != "" {
		whatsapp = s
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, username, email, password_hash, phone, whatsapp, role) VALUES (?,?,?,?,?,?,?)",
		strings.TrimSpace(nu.FullName),
		strings.ToLower(strings.TrimSpace(nu.Username)),
		strings.ToLower(strings.TrimSpace(nu.Email)),
		hash,
		strings.TrimSpace(nu.Phone),
		whatsapp,
		nu.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, &DuplicateError{Field: duplicateKeyField(err)}
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// Language returns the stored language preference, empty when unset.
func (r *UserRepo) Language(ctx context.Context, id uint64) (string, error) {
	var lang sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT language FROM users WHERE id=? LIMIT 1", id).Scan(&lang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return lang.String, nil
}

// SetLanguage persists the language preference on the profile.
func (r *UserRepo) SetLanguage(ctx context.Context, id uint64, lang string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET language=? WHERE id=?", lang, id)
	return err
}

// ProfileUpdate carries the editable profile fields; nil pointers leave the
// column untouched.
type ProfileUpdate struct {
	FullName  *string
	Phone     *string
	Whatsapp  *string
	AvatarURL *string
}

// UpdateProfile applies the non-nil fields of upd to the user's row.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if upd.FullName != nil {
		sets = append(sets, "full_name=?")
		args = append(args, strings.TrimSpace(*upd.FullName))
	}
	if upd.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, strings.TrimSpace(*upd.Phone))
	}
	if upd.Whatsapp != nil {
		sets = append(sets, "whatsapp=?")
		if s := strings.TrimSpace(*upd.Whatsapp); s != "" {
			args = append(args, s)
		} else {
			args = append(args, nil)
		}
	}
	if upd.AvatarURL != nil {
		sets = append(sets, "avatar_url=?")
		args = append(args, strings.TrimSpace(*upd.AvatarURL))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil && isDuplicateKey(err) {
		return &DuplicateError{Field: duplicateKeyField(err)}
	}
	return err
}

// SetActive toggles the account's active flag (admin operation).
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of users, newest first, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, role string, limit, offset int) ([]User, error) {
	query := "SELECT " + userColumns + " FROM users"
	args := []interface{}{}
	if role != "" {
		query += " WHERE role=?"
		args = append(args, role)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash,
			&u.Phone, &u.Whatsapp, &u.Role, &u.Language, &u.AvatarURL,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountByRole returns user totals grouped by role for the dashboard.
func (r *UserRepo) CountByRole(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[role] = n
	}
	return out, rows.Err()
}

// The *Exists methods implement validation.UniquenessChecker. Username and
// email are compared case-insensitively (the columns hold lowercase values),
// phone and WhatsApp exactly.

func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM users WHERE username=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(username)))
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM users WHERE phone=? LIMIT 1",
		strings.TrimSpace(phone))
}

func (r *UserRepo) WhatsappExists(ctx context.Context, number string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM users WHERE whatsapp=? LIMIT 1",
		strings.TrimSpace(number))
}

func (r *UserRepo) exists(ctx context.Context, query string, arg string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
