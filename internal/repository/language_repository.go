package repository

import (
	"context"
	"database/sql"
)

// LanguageRow mirrors the 'languages' table: the server-side switchboard for
// which locales are selectable and which one is the default.
type LanguageRow struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Enabled    bool   `json:"enabled"`
	IsDefault  bool   `json:"is_default"`
	Position   int    `json:"position"`
}

// LanguageRepo reads and mutates the language configuration plus the
// admin-edited message overrides. It implements i18n.Source.
type LanguageRepo struct{ DB *sql.DB }

func NewLanguageRepo(db *sql.DB) *LanguageRepo { return &LanguageRepo{DB: db} }

// ListAll returns every configured language in position order (admin view).
func (r *LanguageRepo) ListAll(ctx context.Context) ([]LanguageRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT code, name, native_name, enabled, is_default, position FROM languages ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LanguageRow
	for rows.Next() {
		var lr LanguageRow
		if err := rows.Scan(&lr.Code, &lr.Name, &lr.NativeName, &lr.Enabled,
			&lr.IsDefault, &lr.Position); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// EnabledLanguages returns enabled codes in position order plus the default
// code (empty when no default is flagged). Part of i18n.Source.
func (r *LanguageRepo) EnabledLanguages(ctx context.Context) ([]string, string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT code, is_default FROM languages WHERE enabled=1 ORDER BY position ASC")
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var (
		codes []string
		def   string
	)
	for rows.Next() {
		var (
			code      string
			isDefault bool
		)
		if err := rows.Scan(&code, &isDefault); err != nil {
			return nil, "", err
		}
		codes = append(codes, code)
		if isDefault {
			def = code
		}
	}
	return codes, def, rows.Err()
}

// Overrides returns admin-edited message overrides grouped per language.
// Part of i18n.Source.
func (r *LanguageRepo) Overrides(ctx context.Context) (map[string]map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT lang_code, msg_key, msg_value FROM translations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]map[string]string{}
	for rows.Next() {
		var lang, key, value string
		if err := rows.Scan(&lang, &key, &value); err != nil {
			return nil, err
		}
		if out[lang] == nil {
			out[lang] = map[string]string{}
		}
		out[lang][key] = value
	}
	return out, rows.Err()
}

// SetEnabled toggles a language. Disabling the current default keeps the
// default flag; resolution simply falls through the chain until an admin
// picks a new default.
func (r *LanguageRepo) SetEnabled(ctx context.Context, code string, enabled bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE languages SET enabled=? WHERE code=?", enabled, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefault flags code as the default language and clears the flag on the
// others in one transaction.
func (r *LanguageRepo) SetDefault(ctx context.Context, code string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE languages SET is_default=0"); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE languages SET is_default=1 WHERE code=?", code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// UpsertTranslation stores or replaces one message override.
func (r *LanguageRepo) UpsertTranslation(ctx context.Context, lang, key, value string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO translations (lang_code, msg_key, msg_value) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE msg_value=VALUES(msg_value)`,
		lang, key, value)
	return err
}

// DeleteTranslation drops an override so the built-in message applies again.
func (r *LanguageRepo) DeleteTranslation(ctx context.Context, lang, key string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM translations WHERE lang_code=? AND msg_key=?", lang, key)
	return err
}
