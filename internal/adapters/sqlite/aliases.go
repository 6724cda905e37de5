package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"locus/internal/config"
	"locus/internal/domain"
	"locus/internal/logging"
	"locus/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// AliasStore implements ports.AliasRepository using SQLite
type AliasStore struct {
	db     *sql.DB
	dbPath string
	log    *slog.Logger
}

var _ ports.AliasRepository = (*AliasStore)(nil)

// NewAliasStore creates an unopened store
func NewAliasStore() *AliasStore {
	return &AliasStore{log: logging.ForComponent(logging.CompAlias)}
}

// Open opens (creating if needed) the database at dbPath
func (s *AliasStore) Open(dbPath string) error {
	s.dbPath = config.ExpandHome(dbPath)

	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create alias directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS aliases (
			key TEXT PRIMARY KEY,
			raw TEXT NOT NULL,
			item_id TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_aliases_item ON aliases(item_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *AliasStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load retrieves an alias by normalized key, or nil, nil when absent
func (s *AliasStore) Load(key string) (*domain.Alias, error) {
	var a domain.Alias
	var id string
	err := s.db.QueryRow(`SELECT key, raw, item_id FROM aliases WHERE key = ?`, key).Scan(&a.Key, &a.Raw, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load alias: %w", err)
	}
	a.ItemID = domain.ItemID(id)
	return &a, nil
}

// List returns every alias ordered by key
func (s *AliasStore) List() ([]domain.Alias, error) {
	rows, err := s.db.Query(`SELECT key, raw, item_id FROM aliases ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	defer rows.Close()

	var out []domain.Alias
	for rows.Next() {
		var a domain.Alias
		var id string
		if err := rows.Scan(&a.Key, &a.Raw, &id); err != nil {
			return nil, err
		}
		a.ItemID = domain.ItemID(id)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Save inserts or replaces the alias with the same key
func (s *AliasStore) Save(a domain.Alias) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO aliases (key, raw, item_id)
		VALUES (?, ?, ?)
	`, a.Key, a.Raw, a.ItemID.String())
	if err != nil {
		return fmt.Errorf("failed to save alias: %w", err)
	}
	s.log.Debug("alias saved", "key", a.Key, "item", a.ItemID.String())
	return nil
}

// Delete removes an alias by key. A missing key is not an error.
func (s *AliasStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM aliases WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	return nil
}

// DeleteForItem removes every alias pointing at id and reports how many
func (s *AliasStore) DeleteForItem(id domain.ItemID) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM aliases WHERE item_id = ?`, id.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete aliases: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	if n > 0 {
		s.log.Info("aliases removed", "item", id.String(), "count", n)
	}
	return int(n), nil
}
