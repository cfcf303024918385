package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Record captures one completed conversion.
type Record struct {
	ID              int64
	RequestID       string
	Source          string
	OutputPath      string
	Model           string
	Language        string
	CueCount        int
	DurationSeconds float64
	CreatedAt       time.Time
}

// Store manages conversion history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open opens (creating if necessary) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history: database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	store := &Store{db: db, path: path}
	if err := store.initSchema(ensureContext(ctx)); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location backing the store.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Add appends one conversion record and returns it with ID and CreatedAt set.
func (s *Store) Add(ctx context.Context, record Record) (Record, error) {
	ctx = ensureContext(ctx)
	record.CreatedAt = time.Now().UTC()
	err := retryOnBusy(ctx, func() error {
		result, err := s.db.ExecContext(ctx,
			`INSERT INTO conversions (request_id, source, output_path, model, language, cue_count, duration_seconds, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.RequestID, record.Source, record.OutputPath, record.Model,
			record.Language, record.CueCount, record.DurationSeconds,
			record.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
		record.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return Record{}, fmt.Errorf("history: insert record: %w", err)
	}
	return record, nil
}

// List returns the most recent records, newest first. Limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, request_id, source, output_path, model, language, cue_count, duration_seconds, created_at
	          FROM conversions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var createdAt string
		if err := rows.Scan(&record.ID, &record.RequestID, &record.Source, &record.OutputPath,
			&record.Model, &record.Language, &record.CueCount, &record.DurationSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("history: scan record: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			record.CreatedAt = parsed
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate records: %w", err)
	}
	return records, nil
}

// Clear removes every record and returns the number deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var deleted int64
	err := retryOnBusy(ctx, func() error {
		result, err := s.db.ExecContext(ctx, "DELETE FROM conversions")
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("history: clear records: %w", err)
	}
	return deleted, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > busyRetryMaxBackoff {
			delay = busyRetryMaxBackoff
		}
	}
	return lastErr
}
