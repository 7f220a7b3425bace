package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// cacheRecord is one line of a cache snapshot file.
type cacheRecord struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

// ExportCache writes every cached response of session id to path as JSONL,
// one record per key in the order they were cached. It returns the number of
// records written.
func (b *Backend) ExportCache(sessionID, path string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreClosed
	}
	if err := b.requireSession(sessionID); err != nil {
		return 0, err
	}

	rows, err := b.db.Query(
		"SELECT cache_key, payload FROM remote_cache WHERE session_id = ? ORDER BY rowid",
		sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("reading cache: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return 0, fmt.Errorf("scanning cache row: %w", err)
		}
		if !json.Valid([]byte(payload)) {
			continue
		}
		line, err := json.Marshal(cacheRecord{Key: key, Payload: json.RawMessage(payload)})
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", key, err)
		}
		records = append(records, line)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ImportCache stores the records of a snapshot written by ExportCache in
// session id. Keys the session already holds keep their payload, and lines
// that do not decode are skipped. It returns the number of records stored.
func (b *Backend) ImportCache(sessionID, path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.ErrStoreClosed
	}
	if err := b.requireSession(sessionID); err != nil {
		return 0, err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stored := 0
	ts := now()
	for _, raw := range records {
		var rec cacheRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Key == "" || len(rec.Payload) == 0 {
			continue
		}
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO remote_cache (session_id, cache_key, payload, created_at) VALUES (?, ?, ?, ?)",
			sessionID, rec.Key, string(rec.Payload), ts,
		)
		if err != nil {
			return 0, fmt.Errorf("importing %s: %w", rec.Key, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			stored++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return stored, nil
}

// requireSession reports ErrSessionNotFound for an unknown id. Callers hold
// b.mu.
func (b *Backend) requireSession(id string) error {
	var one int
	err := b.db.QueryRow("SELECT 1 FROM sessions WHERE session_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("reading session %s: %w", id, err)
	}
	return nil
}

// readJSONL returns each non-empty line of path that is valid JSON.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL replaces path with records, one per line, through a synced temp
// file and a rename.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err = w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
