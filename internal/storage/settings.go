package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrSettingNotFound is returned when a setting has never been saved.
var ErrSettingNotFound = errors.New("setting not found")

// Setting is a persisted key/value pair.
type Setting struct {
	Key       string    `json:"key" yaml:"key"`
	Value     string    `json:"value" yaml:"value"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Settings reads and writes persisted settings.
type Settings struct {
	db  *DB
	now func() time.Time
}

// NewSettings creates a settings repository on db.
func NewSettings(db *DB) *Settings {
	return &Settings{db: db, now: time.Now}
}

// Get returns the setting stored under key.
func (s *Settings) Get(ctx context.Context, key string) (*Setting, error) {
	var value, updatedAt string
	err := s.db.conn.QueryRowContext(ctx, `
		SELECT value, updated_at FROM settings WHERE key = ?
	`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrSettingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	ts, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at for setting %s: %w", key, err)
	}
	return &Setting{Key: key, Value: value, UpdatedAt: ts}, nil
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, s.now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
		s.db.logger.Debug("Setting saved", "key", key, "value", value)
		return nil
	})
}

// LoadBool returns the boolean stored under key.
func (s *Settings) LoadBool(ctx context.Context, key string) (bool, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false, fmt.Errorf("setting %s is not a boolean: %w", key, err)
	}
	return b, nil
}

// SaveBool stores a boolean under key.
func (s *Settings) SaveBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// LoadBoolOr returns the boolean stored under key, or fallback when it was
// never saved.
func (s *Settings) LoadBoolOr(ctx context.Context, key string, fallback bool) (bool, error) {
	b, err := s.LoadBool(ctx, key)
	if errors.Is(err, ErrSettingNotFound) {
		return fallback, nil
	}
	return b, err
}

// List returns all settings ordered by key.
func (s *Settings) List(ctx context.Context) ([]Setting, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT key, value, updated_at FROM settings ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var st Setting
		var updatedAt string
		if err := rows.Scan(&st.Key, &st.Value, &updatedAt); err != nil {
			return nil, err
		}
		if st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("invalid updated_at for setting %s: %w", st.Key, err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
