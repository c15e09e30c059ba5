// Package journal records the outcome of every fired task in a SQLite
// database so past runs can be inspected with "warptimer history".
//
// Only fired tasks are written. Pending tasks are never persisted and are
// not restored on restart.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warpdl/warptimer/internal/scheduler"
	"github.com/warpdl/warptimer/pkg/logger"
	_ "modernc.org/sqlite"
)

// FileName is the journal database name inside the config directory.
const FileName = "journal.db"

const schema = `
CREATE TABLE IF NOT EXISTS fired (
    session   TEXT    NOT NULL,
    task_id   INTEGER NOT NULL,
    args      TEXT    NOT NULL,
    due       INTEGER NOT NULL,
    fired_at  INTEGER NOT NULL,
    delay_ms  INTEGER NOT NULL,
    error     TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS fired_fired_at ON fired (fired_at);
`

// Entry is one journal row.
type Entry struct {
	Session string
	TaskID  uint64
	Args    string
	Due     time.Time
	FiredAt time.Time
	Delay   time.Duration
	// Error is empty when the task succeeded.
	Error string
}

// Failed reports whether the task's callback failed.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Journal appends task outcomes for one scheduler session.
type Journal struct {
	db      *sql.DB
	session string
	log     logger.Logger
}

// Open opens (creating if needed) the journal at path and starts a new
// session. A nil l discards write failures reported through Fired.
func Open(path string, l logger.Logger) (*Journal, error) {
	if l == nil {
		l = logger.NewNopLogger()
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error: cannot initialise journal schema: %w", err)
	}
	return &Journal{db: db, session: uuid.NewString(), log: l}, nil
}

// Session returns the id stamped on every row written by this Journal.
func (j *Journal) Session() string {
	return j.session
}

// Record writes one outcome.
func (j *Journal) Record(o scheduler.Outcome) error {
	if o.Task == nil {
		return errors.New("error: outcome has no task")
	}
	var errText string
	if o.Err != nil {
		errText = o.Err.Error()
	}
	_, err := j.db.Exec(
		`INSERT INTO fired (session, task_id, args, due, fired_at, delay_ms, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.session,
		int64(o.Task.ID),
		fmt.Sprint(o.Task.Args...),
		o.Task.Due,
		o.FiredAt.Unix(),
		o.Task.Delay.Milliseconds(),
		errText,
	)
	if err != nil {
		return fmt.Errorf("error: failed to record task %d: %w", o.Task.ID, err)
	}
	return nil
}

// Fired implements scheduler.Observer. Write failures are logged, never
// propagated into the execution pass.
func (j *Journal) Fired(o scheduler.Outcome) {
	if err := j.Record(o); err != nil {
		j.log.Warning("%v", err)
	}
}

// Recent returns up to limit rows, newest first. A limit <= 0 returns all rows.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`
        SELECT session, task_id, args, due, fired_at, delay_ms, error
        FROM fired
        ORDER BY fired_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			taskID, due, firedAt int64
			delayMs              int64
		)
		if err := rows.Scan(&e.Session, &taskID, &e.Args, &due, &firedAt, &delayMs, &e.Error); err != nil {
			return nil, fmt.Errorf("error: failed to scan journal row: %w", err)
		}
		e.TaskID = uint64(taskID)
		e.Due = time.Unix(due, 0)
		e.FiredAt = time.Unix(firedAt, 0)
		e.Delay = time.Duration(delayMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate journal rows: %w", err)
	}
	return entries, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

var _ scheduler.Observer = (*Journal)(nil)
