package sqlite

import (
	"context"
	"database/sql"

	"github.com/yunweneric/lingo-desk/internal/domain"
)

type SettingsRepo struct{ *Repo }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{NewRepo(db)} }

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (r *SettingsRepo) All(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
