// Package store persists run history to sqlite. Writes arrive from the game
// loop and must never stall a tick, so they go through a buffered queue and a
// single writer goroutine; the queue drops under backpressure. Reads serve
// the REST API and are synchronous.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rohanjoshi-fynd/maze-game/maze"

	_ "modernc.org/sqlite"
)

// ErrNotFound marks lookups that matched no row.
var ErrNotFound = errors.New("store: not found")

// schema.sql creates the runs and level_completions tables.
//
//go:embed schema.sql
var schemaSQL string

const writeQueueSize = 256

// Store records run lifecycles and level completions. It implements the game
// server's RunRecorder.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	closed  bool
	dropped int

	jobs chan func() error
	done chan struct{}
}

// Open opens (creating if needed) the sqlite database at path and starts the
// background writer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY
	// instead of retrying around it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}

	s := &Store{
		db:   db,
		jobs: make(chan func() error, writeQueueSize),
		done: make(chan struct{}),
	}
	go s.writer()
	log.Printf("Run store open at %s", path)
	return s, nil
}

func (s *Store) writer() {
	for job := range s.jobs {
		if err := job(); err != nil {
			log.Printf("Store write failed: %v", err)
		}
	}
	close(s.done)
}

// enqueue hands a write to the background writer. A full queue drops the
// write rather than blocking the caller.
func (s *Store) enqueue(job func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.jobs <- job:
	default:
		s.dropped++
		log.Printf("Store queue full; dropped write (%d so far).", s.dropped)
	}
}

// Flush blocks until every write queued so far has been applied.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	applied := make(chan struct{})
	s.jobs <- func() error {
		close(applied)
		return nil
	}
	<-applied
}

// Close drains the queue, stops the writer and closes the database. Safe to
// call twice.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	<-s.done
	return s.db.Close()
}

// Dropped returns the number of writes discarded under backpressure.
func (s *Store) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// ---------- RunRecorder ----------

// RunStarted inserts the run row. Reconnects with a known run id keep the
// original row.
func (s *Store) RunStarted(runID string, startedAt time.Time) {
	s.enqueue(func() error {
		_, err := s.db.Exec(
			`INSERT INTO runs (run_id, started_at) VALUES (?, ?)
			 ON CONFLICT(run_id) DO NOTHING`,
			runID, startedAt.UnixMilli())
		return err
	})
}

// LevelCompleted records one cleared level together with a compressed
// snapshot of the maze that was played.
func (s *Store) LevelCompleted(runID string, level int, g *maze.Grid, duration time.Duration) {
	s.enqueue(func() error {
		blob, err := EncodeSnapshot(g)
		if err != nil {
			return fmt.Errorf("snapshot level %d of %s: %w", level, runID, err)
		}
		_, err = s.db.Exec(
			`INSERT INTO level_completions
			 (run_id, level, width, height, seed, duration_ms, grid_blob, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, level, g.Width(), g.Height(), g.Seed(),
			duration.Milliseconds(), blob, time.Now().UnixMilli())
		return err
	})
}

// RunEnded stamps the run row with its end time and final level count.
func (s *Store) RunEnded(runID string, endedAt time.Time, levelsDone int) {
	s.enqueue(func() error {
		_, err := s.db.Exec(
			`UPDATE runs SET ended_at = ?, levels_done = ? WHERE run_id = ?`,
			endedAt.UnixMilli(), levelsDone, runID)
		return err
	})
}

// ---------- Queries ----------

// RunSummary is one row of run history.
type RunSummary struct {
	RunID      string     `json:"runId"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	LevelsDone int        `json:"levelsDone"`
}

// RecentRuns lists runs newest first. limit <= 0 means a default page.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, ended_at, levels_done
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			summary   RunSummary
			startedMs int64
			endedMs   sql.NullInt64
		)
		if err := rows.Scan(&summary.RunID, &startedMs, &endedMs, &summary.LevelsDone); err != nil {
			return nil, err
		}
		summary.StartedAt = time.UnixMilli(startedMs)
		if endedMs.Valid {
			t := time.UnixMilli(endedMs.Int64)
			summary.EndedAt = &t
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

// LevelCompletion is one cleared level of a run.
type LevelCompletion struct {
	Level       int       `json:"level"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Seed        int64     `json:"seed"`
	DurationMs  int64     `json:"durationMs"`
	CompletedAt time.Time `json:"completedAt"`
}

// LevelCompletions lists a run's cleared levels in level order.
func (s *Store) LevelCompletions(ctx context.Context, runID string) ([]LevelCompletion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, width, height, seed, duration_ms, completed_at
		 FROM level_completions WHERE run_id = ? ORDER BY level`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []LevelCompletion
	for rows.Next() {
		var (
			c           LevelCompletion
			completedMs int64
		)
		if err := rows.Scan(&c.Level, &c.Width, &c.Height, &c.Seed, &c.DurationMs, &completedMs); err != nil {
			return nil, err
		}
		c.CompletedAt = time.UnixMilli(completedMs)
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// Totals summarizes all recorded history.
type Totals struct {
	Runs            int `json:"runs"`
	LevelsCompleted int `json:"levelsCompleted"`
	BestLevel       int `json:"bestLevel"`
}

// Totals returns all-time counts.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM runs),
		(SELECT COUNT(*) FROM level_completions),
		(SELECT COALESCE(MAX(level), 0) FROM level_completions)`,
	).Scan(&t.Runs, &t.LevelsCompleted, &t.BestLevel)
	return t, err
}

// GridSnapshot loads the maze snapshot stored for one cleared level.
func (s *Store) GridSnapshot(ctx context.Context, runID string, level int) (*Snapshot, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT grid_blob FROM level_completions
		 WHERE run_id = ? AND level = ?
		 ORDER BY completion_id DESC LIMIT 1`, runID, level).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeSnapshot(blob)
}
