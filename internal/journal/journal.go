// Package journal is an append-only SQLite log of scripted painting events.
//
// A journal holds one run: Begin records the canvas size and scatter seed
// and drops the previous run's events, then every event applied to the
// session is appended. Replaying the journal into a fresh session built
// from the same header rebuilds the canvas after a crash. Events are stored
// as JSON payloads with a monotonically increasing sequence number and the
// time they were recorded.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gogpu/palette/internal/script"
)

const schemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS canvas (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    seed INTEGER NOT NULL             -- uint64 bit pattern
);

CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_at INTEGER NOT NULL,     -- UnixNano
    op TEXT NOT NULL,
    payload TEXT NOT NULL             -- JSON encoded script.Event
);
`

// ErrSchemaVersion is returned when a journal was written by an
// incompatible version.
var ErrSchemaVersion = errors.New("journal: unsupported schema version")

// Header describes the session a run's events were applied to.
type Header struct {
	Canvas script.Canvas
	Seed   uint64
}

// Entry is one journaled event.
type Entry struct {
	Seq        int64
	RecordedAt time.Time
	Event      script.Event
}

// Journal is an open event journal. It is safe for concurrent use; the
// underlying database serializes writes.
type Journal struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the journal at path, creating parent directories
// as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("journal: create directory: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db, path: path, now: time.Now}, nil
}

func checkSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("journal: set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("journal: read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: %d", ErrSchemaVersion, version)
	}
	return nil
}

// Path returns the database path.
func (j *Journal) Path() string { return j.path }

// Begin starts a new run: it drops every journaled event and records h.
func (j *Journal) Begin(ctx context.Context, h Header) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("journal: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("journal: clear events: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO canvas (id, width, height, seed) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET width = excluded.width, height = excluded.height, seed = excluded.seed`,
		h.Canvas.Width, h.Canvas.Height, int64(h.Seed))
	if err != nil {
		return fmt.Errorf("journal: set header: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("journal: commit: %w", err)
	}
	return nil
}

// Header returns the header recorded by Begin, or the zero Header when the
// journal was never begun.
func (j *Journal) Header(ctx context.Context) (Header, error) {
	var (
		h    Header
		seed int64
	)
	err := j.db.QueryRowContext(ctx, "SELECT width, height, seed FROM canvas WHERE id = 1").
		Scan(&h.Canvas.Width, &h.Canvas.Height, &seed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return h, fmt.Errorf("journal: read header: %w", err)
	}
	h.Seed = uint64(seed)
	return h, nil
}

// Append adds ev to the end of the journal and returns its sequence number.
func (j *Journal) Append(ctx context.Context, ev script.Event) (int64, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("journal: encode %s: %w", ev.Op, err)
	}
	res, err := j.db.ExecContext(ctx,
		"INSERT INTO events (recorded_at, op, payload) VALUES (?, ?, ?)",
		j.now().UnixNano(), ev.Op, string(payload))
	if err != nil {
		return 0, fmt.Errorf("journal: append %s: %w", ev.Op, err)
	}
	return res.LastInsertId()
}

// Len returns the number of journaled events.
func (j *Journal) Len(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}

// Replay calls fn for every event in sequence order. It stops at the first
// error returned by fn.
func (j *Journal) Replay(ctx context.Context, fn func(Entry) error) error {
	rows, err := j.db.QueryContext(ctx, "SELECT seq, recorded_at, payload FROM events ORDER BY seq")
	if err != nil {
		return fmt.Errorf("journal: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e       Entry
			ts      int64
			payload string
		)
		if err := rows.Scan(&e.Seq, &ts, &payload); err != nil {
			return fmt.Errorf("journal: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &e.Event); err != nil {
			return fmt.Errorf("journal: decode event %d: %w", e.Seq, err)
		}
		e.RecordedAt = time.Unix(0, ts)
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
