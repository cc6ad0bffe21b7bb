// Package recording stores tick reports in a SQLite database so that a run
// can be inspected or replayed later.
package recording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/hooking"
)

const defaultBatchSize = 1000

// ErrClosed is returned when writing to a closed recorder.
var ErrClosed = errors.New("recording: recorder is closed")

// Recorder is a hook that writes every tick report of a controller into a
// SQLite database. Each recorder writes one session.
type Recorder struct {
	*sql.DB
	insert *sql.Stmt

	lock      sync.Mutex
	fileName  string
	session   string
	batchSize int
	pending   []controller.TickReport
	closed    bool
}

// DefaultFileName returns a fresh database file name.
func DefaultFileName() string {
	return "lifeboard_" + xid.New().String() + ".sqlite3"
}

// New opens (or creates) the database at path and starts a new session with
// the given name. An empty path uses DefaultFileName.
func New(path, name string) (*Recorder, error) {
	if path == "" {
		path = DefaultFileName()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	r, err := NewWithDB(db, name)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	r.fileName = path
	fmt.Fprintf(os.Stderr, "Recording ticks in %s, session %s\n", path, r.session)

	return r, nil
}

// NewWithDB starts a new session in an already opened database.
func NewWithDB(db *sql.DB, name string) (*Recorder, error) {
	r := &Recorder{
		DB:        db,
		session:   xid.New().String(),
		batchSize: defaultBatchSize,
	}

	err := r.createTables()
	if err != nil {
		return nil, err
	}

	_, err = r.Exec(
		`INSERT INTO sessions (id, name, started_at) VALUES (?, ?, ?)`,
		r.session, name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	r.insert, err = r.Prepare(`
		INSERT INTO ticks (
			session, tick, action, button_a, button_b,
			board, cooldown, dead_countdown
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	atexit.Register(func() { _ = r.Flush() })

	return r, nil
}

func (r *Recorder) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ticks (
			session        TEXT    NOT NULL,
			tick           INTEGER NOT NULL,
			action         TEXT    NOT NULL,
			button_a       BOOLEAN NOT NULL,
			button_b       BOOLEAN NOT NULL,
			board          INTEGER NOT NULL,
			cooldown       INTEGER NOT NULL,
			dead_countdown INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ticks_session_tick_index
			ON ticks (session, tick)`,
	}

	for _, s := range statements {
		_, err := r.Exec(s)
		if err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}

	return nil
}

// Session returns the ID of the session being written.
func (r *Recorder) Session() string {
	return r.session
}

// FileName returns the database file, or "" if the database was supplied by
// the caller.
func (r *Recorder) FileName() string {
	return r.fileName
}

// WithBatchSize sets how many reports are buffered before they are written.
func (r *Recorder) WithBatchSize(n int) *Recorder {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.batchSize = max(n, 1)

	return r
}

// Func records tick reports. A database that cannot be written is fatal.
func (r *Recorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != controller.HookPosAfterTick {
		return
	}

	err := r.Record(ctx.Item.(controller.TickReport))
	if err != nil {
		panic(err)
	}
}

// Record buffers one report, writing the buffer out once it is full.
func (r *Recorder) Record(report controller.TickReport) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return ErrClosed
	}

	r.pending = append(r.pending, report)
	if len(r.pending) < r.batchSize {
		return nil
	}

	return r.flushLocked()
}

// Flush writes all the buffered reports.
func (r *Recorder) Flush() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}

	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	stmt := tx.Stmt(r.insert)
	for _, rep := range r.pending {
		_, err = stmt.Exec(
			r.session,
			rep.Tick,
			rep.Action.String(),
			rep.Buttons.A,
			rep.Buttons.B,
			rep.Board.Bits(),
			rep.Cooldown,
			rep.DeadCountdown,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting tick %d: %w", rep.Tick, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("committing ticks: %w", err)
	}

	r.pending = r.pending[:0]

	return nil
}

// Close flushes the buffer and closes the database.
func (r *Recorder) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}

	flushErr := r.flushLocked()
	r.closed = true

	return errors.Join(flushErr, r.insert.Close(), r.DB.Close())
}
