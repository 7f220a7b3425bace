package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// SaveState stores value as JSON under name for session id, replacing any
// previous value.
func (b *Backend) SaveState(sessionID, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrStoreClosed
	}

	if _, err := b.db.Exec(
		`INSERT INTO session_state (session_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, name, string(data), now(),
	); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// LoadState decodes the value stored under name into out. It reports false
// when nothing is stored.
func (b *Backend) LoadState(sessionID, name string, out any) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return false, types.ErrStoreClosed
	}

	var data string
	err := b.db.QueryRow(
		"SELECT value FROM session_state WHERE session_id = ? AND name = ?",
		sessionID, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}
