package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "giftgrid.db"

// ErrAlreadyAttached is returned by Attach on an attached backend.
var ErrAlreadyAttached = errors.New("session store is already attached")

// Backend owns the SQLite database holding every session's remote cache and
// editor state. Data of one session is never visible to another.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (creating if needed) the database in dataDir.
func (b *Backend) Attach(dataDir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return ErrAlreadyAttached
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach closes the database. It is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.attached = false
	return err
}

// CreateSession starts a new session with a UUID v7 ID and makes it current.
func (b *Backend) CreateSession() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return "", types.ErrStoreClosed
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO sessions (session_id, created_at) VALUES (?, ?)",
		id.String(), now(),
	); err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO meta (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		metaCurrentSession, id.String(),
	); err != nil {
		return "", fmt.Errorf("setting current session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing session: %w", err)
	}
	return id.String(), nil
}

// CurrentSession returns the active session ID, or ErrSessionNotFound when
// no session is active.
func (b *Backend) CurrentSession() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return "", types.ErrStoreClosed
	}

	var id string
	err := b.db.QueryRow(
		`SELECT m.value FROM meta m JOIN sessions s ON s.session_id = m.value WHERE m.name = ?`,
		metaCurrentSession,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading current session: %w", err)
	}
	return id, nil
}

// SessionInfo summarizes a session.
type SessionInfo struct {
	ID         string    `json:"id" yaml:"id"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	CachedKeys int       `json:"cached_keys" yaml:"cached_keys"`
}

// Session returns information about session id.
func (b *Backend) Session(id string) (SessionInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return SessionInfo{}, types.ErrStoreClosed
	}

	var created string
	err := b.db.QueryRow("SELECT created_at FROM sessions WHERE session_id = ?", id).Scan(&created)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionInfo{}, types.ErrSessionNotFound
	}
	if err != nil {
		return SessionInfo{}, fmt.Errorf("reading session %s: %w", id, err)
	}

	info := SessionInfo{ID: id}
	info.CreatedAt, _ = time.Parse(time.RFC3339, created)
	if err := b.db.QueryRow(
		"SELECT COUNT(*) FROM remote_cache WHERE session_id = ?", id,
	).Scan(&info.CachedKeys); err != nil {
		return SessionInfo{}, fmt.Errorf("counting cache entries: %w", err)
	}
	return info, nil
}

// EndSession deletes every row belonging to session id.
func (b *Backend) EndSession(id string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrStoreClosed
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM remote_cache WHERE session_id = ?",
		"DELETE FROM session_state WHERE session_id = ?",
		"DELETE FROM meta WHERE name = '" + metaCurrentSession + "' AND value = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("ending session %s: %w", id, err)
		}
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE session_id = ?", id)
	if err != nil {
		return fmt.Errorf("ending session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrSessionNotFound
	}
	return tx.Commit()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
