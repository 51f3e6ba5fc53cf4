package sink

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/errors"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// JournalSink keeps a local copy of every record in a SQLite database.
type JournalSink struct {
	db *sql.DB
}

var _ Sink = (*JournalSink)(nil)

// OpenJournal opens or creates the journal database at dsn.
func OpenJournal(dsn string) (*JournalSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewIOError("failed to open journal", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		schemaSQL,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.NewIOError("failed to initialize journal", err)
		}
	}
	return &JournalSink{db: db}, nil
}

func (j *JournalSink) Close() error {
	return j.db.Close()
}

func (j *JournalSink) Append(ctx context.Context, record screening.Record) error {
	if len(record.Answers) != screening.QuestionCount {
		return fmt.Errorf("record has %d answers, want %d: %w", len(record.Answers), screening.QuestionCount, screening.ErrIncompleteAnswers)
	}
	args := []any{record.SubmissionID, record.Timestamp, record.Verdict}
	for _, a := range record.Answers {
		args = append(args, a)
	}
	_, err := j.db.ExecContext(ctx, insertSQL, args...)
	if err != nil {
		return errors.NewIOError("failed to insert record", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *JournalSink) Recent(ctx context.Context, limit int) (records []screening.Record, err error) {
	rows, err := j.db.QueryContext(ctx, "SELECT id, timestamp, verdict, "+answerColumns()+" FROM submissions ORDER BY seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, errors.NewIOError("failed to query records", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := screening.Record{Answers: make([]string, screening.QuestionCount)}
		dest := []any{&r.SubmissionID, &r.Timestamp, &r.Verdict}
		for i := range r.Answers {
			dest = append(dest, &r.Answers[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.NewIOError("failed to scan record", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIOError("failed to read records", err)
	}
	return records, nil
}

var insertSQL = func() string {
	placeholders := strings.Repeat("?, ", 3+screening.QuestionCount)
	return "INSERT INTO submissions (id, timestamp, verdict, " + answerColumns() + ", seq) VALUES (" +
		placeholders + "(SELECT COALESCE(MAX(seq), 0) + 1 FROM submissions))"
}()

func answerColumns() string {
	cols := make([]string, 0, screening.QuestionCount)
	for i := 1; i <= screening.QuestionCount; i++ {
		cols = append(cols, fmt.Sprintf("q%02d", i))
	}
	return strings.Join(cols, ", ")
}
