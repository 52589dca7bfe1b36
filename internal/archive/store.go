// Package archive persists parse runs in a SQL database.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizdoc/internal/question"
)

// ErrRunNotFound reports a run id with no stored run.
var ErrRunNotFound = errors.New("run not found")

// RunInput is what SaveRun records.
type RunInput struct {
	Source    string
	Title     string
	Strategy  string
	Questions []question.Question
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Title         string    `json:"title"`
	Strategy      string    `json:"strategy"`
	Fingerprint   string    `json:"fingerprint"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Run is a stored run with its questions.
type Run struct {
	RunSummary
	Questions []question.Question `json:"questions"`
}

// Store reads and writes runs.
type Store struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
	newID   func() string
}

// Open connects to the database and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if d.fileBacked(dsn) {
		if dir := filepath.Dir(strings.TrimPrefix(dsn, "file:")); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create archive dir: %w", err)
			}
		}
	}
	db, err := sql.Open(d.sqlName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s archive: %w", d.driver, err)
	}
	if d.singleConn {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s archive: %w", d.driver, err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, dialect: d, now: time.Now, newID: uuid.NewString}, nil
}

// Driver returns the normalized driver name.
func (s *Store) Driver() string { return s.dialect.driver }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores a run and its questions in one transaction.
func (s *Store) SaveRun(ctx context.Context, in RunInput) (RunSummary, error) {
	fingerprint, err := Fingerprint(in.Questions)
	if err != nil {
		return RunSummary{}, err
	}
	summary := RunSummary{
		ID:            s.newID(),
		Source:        in.Source,
		Title:         in.Title,
		Strategy:      in.Strategy,
		Fingerprint:   fingerprint,
		QuestionCount: len(in.Questions),
		CreatedAt:     s.now().UTC().Truncate(time.Millisecond),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, fmt.Errorf("begin save run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.dialect.bind(
		"INSERT INTO runs (run_id, source, title, strategy, fingerprint, question_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		summary.ID, summary.Source, summary.Title, summary.Strategy, summary.Fingerprint,
		summary.QuestionCount, summary.CreatedAt.UnixMilli(),
	); err != nil {
		return RunSummary{}, fmt.Errorf("insert run: %w", err)
	}
	insertQuestion := s.dialect.bind("INSERT INTO questions (run_id, position, number, kind, body) VALUES (?, ?, ?, ?, ?)")
	insertOption := s.dialect.bind("INSERT INTO options (run_id, question_position, position, label, body) VALUES (?, ?, ?, ?, ?)")
	for i, q := range in.Questions {
		if _, err := tx.ExecContext(ctx, insertQuestion, summary.ID, i, q.Number(), string(q.Kind()), q.Body()); err != nil {
			return RunSummary{}, fmt.Errorf("insert question %d: %w", i, err)
		}
		for j, opt := range q.Options() {
			if _, err := tx.ExecContext(ctx, insertOption, summary.ID, i, j, opt.Label(), opt.Body()); err != nil {
				return RunSummary{}, fmt.Errorf("insert option %d.%d: %w", i, j, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return RunSummary{}, fmt.Errorf("commit save run: %w", err)
	}
	return summary, nil
}

const summaryColumns = "run_id, source, title, strategy, fingerprint, question_count, created_at"

// ListRuns returns the newest runs first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := "SELECT " + summaryColumns + " FROM runs ORDER BY created_at DESC, run_id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.querySummaries(ctx, query)
}

// FindByFingerprint returns the runs whose question list hashes to fingerprint.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]RunSummary, error) {
	query := "SELECT " + summaryColumns + " FROM runs WHERE fingerprint = ? ORDER BY created_at DESC, run_id"
	return s.querySummaries(ctx, s.dialect.bind(query), fingerprint)
}

// LoadRun returns a run with its questions in stored order.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.bind("SELECT "+summaryColumns+" FROM runs WHERE run_id = ?"), id)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("load run: %w", err)
	}
	options, err := s.loadOptions(ctx, id)
	if err != nil {
		return Run{}, err
	}
	questions, err := s.loadQuestions(ctx, id, options)
	if err != nil {
		return Run{}, err
	}
	return Run{RunSummary: summary, Questions: questions}, nil
}

func (s *Store) loadOptions(ctx context.Context, id string) (map[int][]question.Option, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.bind(
		"SELECT question_position, label, body FROM options WHERE run_id = ? ORDER BY question_position, position"), id)
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	defer rows.Close()
	out := map[int][]question.Option{}
	for rows.Next() {
		var pos int
		var label, body string
		if err := rows.Scan(&pos, &label, &body); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out[pos] = append(out[pos], question.NewOption(label, body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	return out, nil
}

func (s *Store) loadQuestions(ctx context.Context, id string, options map[int][]question.Option) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.bind(
		"SELECT position, number, kind, body FROM questions WHERE run_id = ? ORDER BY position"), id)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()
	out := []question.Question{}
	for rows.Next() {
		var pos int
		var number, kind, body string
		if err := rows.Scan(&pos, &number, &kind, &body); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q, err := question.New(question.Kind(kind), number, body, options[pos]...)
		if err != nil {
			return nil, fmt.Errorf("stored question %d: %w", pos, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return out, nil
}

func (s *Store) querySummaries(ctx context.Context, query string, args ...any) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	out := []RunSummary{}
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (RunSummary, error) {
	var summary RunSummary
	var created int64
	if err := row.Scan(&summary.ID, &summary.Source, &summary.Title, &summary.Strategy,
		&summary.Fingerprint, &summary.QuestionCount, &created); err != nil {
		return RunSummary{}, err
	}
	summary.CreatedAt = time.UnixMilli(created).UTC()
	return summary, nil
}
