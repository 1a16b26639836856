package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteFileName = "values.sqlite"

var ErrNotFound = errors.New("field not found")

// InvalidValueError is returned when a value is not a serialized value of the field's mode.
type InvalidValueError struct {
	Field string
	Mode  model.Mode
	Value string
}

func (e InvalidValueError) Error() string {
	want := "YYYY-MM-DD"
	if e.Mode.HasTime() {
		want = "YYYY-MM-DDTHH:mm"
	}
	return fmt.Sprintf("invalid %s value for field %s: %q (expected %s or empty)", e.Mode, e.Field, e.Value, want)
}

// Field is one named value owned by the host application.
type Field struct {
	Name      string     `json:"name"`
	Mode      model.Mode `json:"mode"`
	Value     string     `json:"value"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type HistoryEntry struct {
	ID    string    `json:"id"`
	Field string    `json:"field"`
	Value string    `json:"value"`
	At    time.Time `json:"at"`
}

// Store persists picker values in <Dir>/values.sqlite.
type Store struct {
	Dir string

	// Now is used for timestamps; nil means time.Now.
	Now model.Clock
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a script share the file; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fields (
			name TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			field TEXT NOT NULL,
			value TEXT NOT NULL,
			at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_field ON history(field, at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func normalizeFieldName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("field name is empty")
	}
	return name, nil
}

// Get returns a stored field or ErrNotFound.
func (s Store) Get(ctx context.Context, name string) (Field, error) {
	name, err := normalizeFieldName(name)
	if err != nil {
		return Field{}, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Field{}, err
	}
	defer db.Close()

	var f Field
	var mode string
	var ms int64
	err = db.QueryRowContext(ctx, `SELECT name, mode, value, updated_at_unixms FROM fields WHERE name = ?`, name).Scan(&f.Name, &mode, &f.Value, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return Field{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Field{}, err
	}
	f.Mode = model.Mode(mode)
	f.UpdatedAt = time.UnixMilli(ms).UTC()
	return f, nil
}

// Set stores value for a field, creating it with mode when missing.
// An existing field keeps its mode; the empty value clears it.
func (s Store) Set(ctx context.Context, name string, mode model.Mode, value string) (Field, error) {
	name, err := normalizeFieldName(name)
	if err != nil {
		return Field{}, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Field{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return Field{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	switch err := tx.QueryRowContext(ctx, `SELECT mode FROM fields WHERE name = ?`, name).Scan(&existing); {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Field{}, err
	default:
		mode = model.Mode(existing)
	}
	if mode == "" {
		mode = model.ModeDate
	}
	if !picker.Valid(value, mode) {
		return Field{}, InvalidValueError{Field: name, Mode: mode, Value: value}
	}

	now := s.Now.Now().UTC()
	ms := now.UnixMilli()
	if _, err := tx.ExecContext(ctx, `INSERT INTO fields(name, mode, value, updated_at_unixms) VALUES(?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at_unixms = excluded.updated_at_unixms`,
		name, string(mode), value, ms); err != nil {
		return Field{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO history(id, field, value, at_unixms) VALUES(?, ?, ?, ?)`,
		uuid.NewString(), name, value, ms); err != nil {
		return Field{}, err
	}
	if err := tx.Commit(); err != nil {
		return Field{}, err
	}
	return Field{Name: name, Mode: mode, Value: value, UpdatedAt: time.UnixMilli(ms).UTC()}, nil
}

// List returns all fields sorted by name.
func (s Store) List(ctx context.Context) ([]Field, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name, mode, value, updated_at_unixms FROM fields`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Field{}
	for rows.Next() {
		var f Field
		var mode string
		var ms int64
		if err := rows.Scan(&f.Name, &mode, &f.Value, &ms); err != nil {
			return nil, err
		}
		f.Mode = model.Mode(mode)
		f.UpdatedAt = time.UnixMilli(ms).UTC()
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a field and its history.
func (s Store) Delete(ctx context.Context, name string) error {
	name, err := normalizeFieldName(name)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM fields WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	_, err = db.ExecContext(ctx, `DELETE FROM history WHERE field = ?`, name)
	return err
}

// History returns the newest-first values a field has held. limit <= 0 means all.
func (s Store) History(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	name, err := normalizeFieldName(name)
	if err != nil {
		return nil, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, field, value, at_unixms FROM history WHERE field = ? ORDER BY at_unixms DESC, rowid DESC`
	args := []any{name}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		var ms int64
		if err := rows.Scan(&h.ID, &h.Field, &h.Value, &ms); err != nil {
			return nil, err
		}
		h.At = time.UnixMilli(ms).UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}
