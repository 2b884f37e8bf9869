package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultLimit = 50

// Store persists benchmark runs and their transcripts in SQLite.
type Store struct {
	db *sql.DB
}

// Run is one model's aggregate result for a task.
type Run struct {
	ID         int64
	Model      string
	Provider   string
	Task       string
	TargetWord string
	UsageRate  float64
	Hits       int
	Samples    int
	Latency    int64
	Tokens     int
	EvalDate   time.Time
}

// Transcript is one persisted prompt/response/score triple.
type Transcript struct {
	ID          int64
	RunID       int64
	SampleID    string
	Prompt      string
	Response    string
	Score       float64
	MatchedForm string
	Error       string
}

func NewStore(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("store: empty db path")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping db: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("store: nil db")
	}

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			task TEXT NOT NULL,
			target_word TEXT NOT NULL,
			usage_rate REAL NOT NULL,
			hits INTEGER NOT NULL,
			samples INTEGER NOT NULL,
			latency INTEGER NOT NULL,
			tokens INTEGER NOT NULL,
			eval_date INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			sample_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			score REAL NOT NULL,
			matched_form TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_task ON runs(task)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_model_task ON runs(model, task)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_eval_date ON runs(eval_date)`,
		`CREATE INDEX IF NOT EXISTS idx_transcripts_run ON transcripts(run_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun inserts a run and its transcripts in one transaction. The run's
// ID is set on success.
func (s *Store) SaveRun(ctx context.Context, run *Run, transcripts []Transcript) error {
	if s == nil || s.db == nil {
		return errors.New("store: nil store")
	}
	if ctx == nil {
		return errors.New("store: nil context")
	}
	if run == nil {
		return errors.New("store: nil run")
	}

	model := strings.TrimSpace(run.Model)
	provider := strings.TrimSpace(run.Provider)
	taskName := strings.TrimSpace(run.Task)
	target := strings.TrimSpace(run.TargetWord)
	if model == "" || provider == "" || taskName == "" || target == "" {
		return errors.New("store: missing model/provider/task/target_word")
	}

	evalDate := run.EvalDate
	if evalDate.IsZero() {
		evalDate = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			model, provider, task, target_word, usage_rate, hits, samples, latency, tokens, eval_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, model, provider, taskName, target, run.UsageRate, run.Hits, run.Samples, run.Latency, run.Tokens, evalDate.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: run id: %w", err)
	}

	for i := range transcripts {
		t := transcripts[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transcripts (run_id, sample_id, prompt, response, score, matched_form, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, strings.TrimSpace(t.SampleID), t.Prompt, t.Response, t.Score, t.MatchedForm, t.Error); err != nil {
			return fmt.Errorf("store: insert transcript: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	run.ID = runID
	run.EvalDate = evalDate
	run.Model = model
	run.Provider = provider
	run.Task = taskName
	run.TargetWord = target
	return nil
}

// GetLeaderboard returns runs for a task ordered by usage rate descending.
func (s *Store) GetLeaderboard(ctx context.Context, taskName string, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		return nil, errors.New("store: empty task")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, task, target_word, usage_rate, hits, samples, latency, tokens, eval_date
		FROM runs
		WHERE task = ?
		ORDER BY usage_rate DESC, eval_date DESC
		LIMIT ?
	`, taskName, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query leaderboard: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// GetModelHistory returns all runs for one model and task, newest first.
func (s *Store) GetModelHistory(ctx context.Context, model, taskName string) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	model = strings.TrimSpace(model)
	taskName = strings.TrimSpace(taskName)
	if model == "" || taskName == "" {
		return nil, errors.New("store: missing model/task")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, task, target_word, usage_rate, hits, samples, latency, tokens, eval_date
		FROM runs
		WHERE model = ? AND task = ?
		ORDER BY eval_date DESC
	`, model, taskName)
	if err != nil {
		return nil, fmt.Errorf("store: query model history: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// GetTranscripts returns the persisted prompt/response/score triples for a run.
func (s *Store) GetTranscripts(ctx context.Context, runID int64) ([]Transcript, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	if runID <= 0 {
		return nil, errors.New("store: invalid run id")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, sample_id, prompt, response, score, matched_form, error
		FROM transcripts
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query transcripts: %w", err)
	}
	defer rows.Close()

	var out []Transcript
	for rows.Next() {
		var t Transcript
		if err := rows.Scan(
			&t.ID,
			&t.RunID,
			&t.SampleID,
			&t.Prompt,
			&t.Response,
			&t.Score,
			&t.MatchedForm,
			&t.Error,
		); err != nil {
			return nil, fmt.Errorf("store: scan transcript: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan rows: %w", err)
	}
	return out, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var out []Run
	for rows.Next() {
		var r Run
		var evalDateMS int64
		if err := rows.Scan(
			&r.ID,
			&r.Model,
			&r.Provider,
			&r.Task,
			&r.TargetWord,
			&r.UsageRate,
			&r.Hits,
			&r.Samples,
			&r.Latency,
			&r.Tokens,
			&evalDateMS,
		); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.EvalDate = time.UnixMilli(evalDateMS).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan rows: %w", err)
	}
	return out, nil
}
