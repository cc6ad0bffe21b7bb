package recording

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
)

// Session describes one recorded run.
type Session struct {
	ID        string
	Name      string
	StartedAt time.Time
	Ticks     int
}

// Reader reads recorded sessions.
type Reader struct {
	*sql.DB
}

// Open opens a recording database for reading.
func Open(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return &Reader{DB: db}, nil
}

// ListSessions returns all sessions, oldest first.
func (r *Reader) ListSessions() ([]Session, error) {
	rows, err := r.Query(`
		SELECT s.id, s.name, s.started_at, COUNT(t.tick)
		FROM sessions s
		LEFT JOIN ticks t ON t.session = s.id
		GROUP BY s.id
		ORDER BY s.started_at, s.id`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var (
			s       Session
			started string
		)

		err = rows.Scan(&s.ID, &s.Name, &started, &s.Ticks)
		if err != nil {
			return nil, fmt.Errorf("reading session: %w", err)
		}

		s.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}

		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// ListTicks returns the reports of one session in tick order.
func (r *Reader) ListTicks(session string) ([]controller.TickReport, error) {
	rows, err := r.Query(`
		SELECT tick, action, button_a, button_b, board, cooldown, dead_countdown
		FROM ticks
		WHERE session = ?
		ORDER BY tick`, session)
	if err != nil {
		return nil, fmt.Errorf("listing ticks: %w", err)
	}
	defer rows.Close()

	reports := []controller.TickReport{}
	for rows.Next() {
		var (
			rep    controller.TickReport
			action string
			bits   uint32
		)

		err = rows.Scan(
			&rep.Tick,
			&action,
			&rep.Buttons.A,
			&rep.Buttons.B,
			&bits,
			&rep.Cooldown,
			&rep.DeadCountdown,
		)
		if err != nil {
			return nil, fmt.Errorf("reading tick: %w", err)
		}

		var ok bool
		rep.Action, ok = controller.ParseAction(action)
		if !ok {
			return nil, fmt.Errorf("tick %d: unknown action %q", rep.Tick, action)
		}

		rep.Board = grid.NewRandom(bits)
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}
