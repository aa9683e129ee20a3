package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Export returns a full snapshot of the engine as raw SQLite bytes,
// suitable for writing to a backup file and feeding back to Import.
// Uses VACUUM INTO so the snapshot is compact and self-consistent even
// with WAL pages outstanding.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	tmp, err := tempPath("vertix-export-*.db")
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	defer os.Remove(tmp)

	// VACUUM INTO refuses to overwrite an existing file.
	os.Remove(tmp)

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, tmp); err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: read: %w", err)
	}
	return data, nil
}

// Import replaces the store's contents with a previously exported
// snapshot. The incoming bytes are validated by opening them as a
// read-only database first; invalid bytes return ErrBadSnapshot and
// leave the current contents untouched.
func (s *Store) Import(ctx context.Context, snapshot []byte) error {
	const op = "Store.Import"
	log := slog.With("op", op)

	if s.db == nil {
		return ErrClosed
	}

	tmp, err := tempPath("vertix-import-*.db")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp)

	if err := os.WriteFile(tmp, snapshot, 0o600); err != nil {
		return fmt.Errorf("%s: write temp: %w", op, err)
	}

	if err := validateSnapshot(ctx, tmp); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrBadSnapshot, err)
	}

	// The snapshot is sound. Swap contents table by table inside one
	// transaction; ATTACH cannot run inside a transaction, so it brackets
	// the copy.
	if _, err := s.db.ExecContext(ctx, `ATTACH DATABASE ? AS snap`, tmp); err != nil {
		return fmt.Errorf("%s: attach: %w", op, err)
	}
	detach := func() {
		if _, err := s.db.ExecContext(ctx, `DETACH DATABASE snap`); err != nil {
			log.Error("failed to detach snapshot", "err", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		detach()
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}

	copyStmts := []string{
		`DELETE FROM cart_items`,
		`DELETE FROM orders`,
		`DELETE FROM products`,
		`DELETE FROM users`,
		`DELETE FROM meta`,
		`INSERT INTO products SELECT * FROM snap.products`,
		`INSERT INTO users SELECT * FROM snap.users`,
		`INSERT INTO cart_items SELECT * FROM snap.cart_items`,
		`INSERT INTO orders SELECT * FROM snap.orders`,
		`INSERT INTO meta SELECT * FROM snap.meta`,
	}
	for _, stmt := range copyStmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			detach()
			return fmt.Errorf("%s: %q: %w", op, stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		detach()
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	detach()

	log.Info("imported snapshot", "bytes", len(snapshot))
	return nil
}

// Reset drops every table, recreates the schema, and re-seeds the
// bundled catalog. Destructive and irreversible; callers must confirm
// before invoking it.
func (s *Store) Reset(ctx context.Context) error {
	const op = "Store.Reset"

	if s.db == nil {
		return ErrClosed
	}

	drops := []string{
		`DROP TABLE IF EXISTS cart_items`,
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS meta`,
	}
	for _, stmt := range drops {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %q: %w", op, stmt, err)
		}
	}

	if err := applySchema(s.db); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.Seed(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("store reset", "op", op)
	return nil
}

// tempPath reserves a unique temp file path.
func tempPath(pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	f.Close()
	return name, nil
}

// validateSnapshot opens the candidate file read-only and checks that it
// is a sound SQLite database containing the expected tables.
func validateSnapshot(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}

	for _, table := range []string{"products", "users", "cart_items", "orders", "meta"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table).Scan(&name)
		if err != nil {
			return fmt.Errorf("missing table %s: %w", table, err)
		}
	}
	return nil
}
