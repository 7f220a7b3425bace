// Package sqlite implements the session store for giftgrid on SQLite.
package sqlite

// Schema DDL. Statements are idempotent so Attach can run them on every open.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);`

	createRemoteCache = `CREATE TABLE IF NOT EXISTS remote_cache (
    session_id TEXT NOT NULL,
    cache_key TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (session_id, cache_key),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);`

	createSessionState = `CREATE TABLE IF NOT EXISTS session_state (
    session_id TEXT NOT NULL,
    name TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (session_id, name),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSessions,
	createRemoteCache,
	createSessionState,
	createMeta,
}

// Session state names.
const (
	StateGrid      = "grid"
	StateClipboard = "clipboard"
)

// metaCurrentSession names the meta row holding the active session ID.
const metaCurrentSession = "current_session"
