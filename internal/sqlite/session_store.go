package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/giftgrid/internal/remote"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Compile-time interface check.
var _ remote.Store = (*SessionStore)(nil)

// SessionStore is the remote.Store of one session.
type SessionStore struct {
	backend   *Backend
	sessionID string
}

// Store returns the remote cache store of session id.
func (b *Backend) Store(sessionID string) *SessionStore {
	return &SessionStore{backend: b, sessionID: sessionID}
}

// Load implements remote.Store.
func (s *SessionStore) Load(key string) ([]byte, bool, error) {
	b := s.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, false, types.ErrStoreClosed
	}

	var payload string
	err := b.db.QueryRow(
		"SELECT payload FROM remote_cache WHERE session_id = ? AND cache_key = ?",
		s.sessionID, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

// Save implements remote.Store. The first payload stored under a key wins.
func (s *SessionStore) Save(key string, payload []byte) error {
	b := s.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrStoreClosed
	}

	if _, err := b.db.Exec(
		"INSERT OR IGNORE INTO remote_cache (session_id, cache_key, payload, created_at) VALUES (?, ?, ?, ?)",
		s.sessionID, key, string(payload), now(),
	); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Replace implements remote.Store. It overwrites the payload stored under
// key.
func (s *SessionStore) Replace(key string, payload []byte) error {
	b := s.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrStoreClosed
	}

	if _, err := b.db.Exec(
		`INSERT INTO remote_cache (session_id, cache_key, payload, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, cache_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		s.sessionID, key, string(payload), now(),
	); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Keys returns the cache keys stored for the session in insertion order.
func (s *SessionStore) Keys() ([]string, error) {
	b := s.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreClosed
	}

	rows, err := b.db.Query(
		"SELECT cache_key FROM remote_cache WHERE session_id = ? ORDER BY rowid",
		s.sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cache keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning cache key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
