// Package store provides a persistent, URL-keyed cache of ingested
// PIP identities backed by SQLite.
//
// Caching is deliberately not part of the ingestion core: the Ingester
// is a pure fetch-validate-normalize function, and embedding
// applications layer this store over it with a TTL of their choosing
// (see CachedIngester).
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store caches ingested identities keyed by their source URL.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) a store at path. Use ":memory:"
// for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening identity store: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS identities (
			url        TEXT PRIMARY KEY,
			document   BLOB NOT NULL,
			fetched_at TEXT NOT NULL,
			expires_at INTEGER
		)`)
	if err != nil {
		return fmt.Errorf("migrating identity store: %w", err)
	}
	return nil
}

// Put stores an identity for url. A positive ttl sets an expiry;
// zero means the entry never expires.
func (s *Store) Put(url string, identity map[string]any, ttl time.Duration) error {
	document, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encoding identity for %s: %w", url, err)
	}

	now := time.Now().UTC()
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}

	_, err = s.db.Exec(`
		INSERT INTO identities (url, document, fetched_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			document = excluded.document,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		url, document, now.Format(time.RFC3339), expiresAt)
	if err != nil {
		return fmt.Errorf("storing identity for %s: %w", url, err)
	}
	return nil
}

// Get returns the cached identity for url. The second return is false
// when there is no live entry; expired entries are deleted on access.
func (s *Store) Get(url string) (map[string]any, bool, error) {
	var document []byte
	var expiresAt sql.NullInt64

	err := s.db.QueryRow(
		`SELECT document, expires_at FROM identities WHERE url = ?`, url,
	).Scan(&document, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading identity for %s: %w", url, err)
	}

	if expiresAt.Valid && time.Now().UnixNano() > expiresAt.Int64 {
		_ = s.Delete(url)
		return nil, false, nil
	}

	var identity map[string]any
	if err := json.Unmarshal(document, &identity); err != nil {
		return nil, false, fmt.Errorf("decoding cached identity for %s: %w", url, err)
	}
	return identity, true, nil
}

// Delete removes the entry for url, if any.
func (s *Store) Delete(url string) error {
	if _, err := s.db.Exec(`DELETE FROM identities WHERE url = ?`, url); err != nil {
		return fmt.Errorf("deleting identity for %s: %w", url, err)
	}
	return nil
}

// Purge removes every expired entry and returns how many were removed.
func (s *Store) Purge() (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM identities WHERE expires_at IS NOT NULL AND expires_at < ?`,
		time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purging identity store: %w", err)
	}
	return res.RowsAffected()
}

// Len returns the number of entries, expired included.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM identities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting identities: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
