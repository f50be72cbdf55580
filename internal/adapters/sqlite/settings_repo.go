package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

const settingsKey = "default"

// SettingsRepository garde le blob JSON des réglages sous une clé unique.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Load(ctx context.Context) ([]byte, error) {
	var s string
	err := r.db.QueryRowContext(ctx, `SELECT value_json FROM settings WHERE key = ?`, settingsKey).Scan(&s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Pas encore initialisé.
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return []byte(s), nil
}

func (r *SettingsRepository) Save(ctx context.Context, blob []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings(key, value_json, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at
	`, settingsKey, string(blob), time.Now().UTC().Format(time.RFC3339))
	return err
}
