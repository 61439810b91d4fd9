package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dshills/gqlsearch-mcp/pkg/types"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStorage)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStorage opens the audit database at dbPath and applies pending
// migrations. ":memory:" gives a private in-memory database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// RecordInterception stores an interception and sets its ID
func (s *SQLiteStorage) RecordInterception(ctx context.Context, in *types.Interception) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO interceptions (session_id, request_id, action, tool, detail, outcome, duration_us, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		in.SessionID,
		in.RequestID,
		in.Action,
		in.Tool,
		in.Detail,
		in.Outcome,
		in.Duration.Microseconds(),
		in.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record interception: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get interception ID: %w", err)
	}
	in.ID = id
	return nil
}

// ListInterceptions returns up to limit interceptions, newest first
func (s *SQLiteStorage) ListInterceptions(ctx context.Context, limit int) ([]*types.Interception, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, session_id, COALESCE(request_id, ''), action, tool, COALESCE(detail, ''),
		       outcome, duration_us, created_at
		FROM interceptions
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list interceptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*types.Interception
	for rows.Next() {
		var (
			in         types.Interception
			durationUs int64
			createdMs  int64
		)
		if err := rows.Scan(&in.ID, &in.SessionID, &in.RequestID, &in.Action, &in.Tool,
			&in.Detail, &in.Outcome, &durationUs, &createdMs); err != nil {
			return nil, fmt.Errorf("failed to scan interception: %w", err)
		}
		in.Duration = time.Duration(durationUs) * time.Microsecond
		in.CreatedAt = time.UnixMilli(createdMs)
		result = append(result, &in)
	}

	return result, rows.Err()
}

// CountByAction returns the number of interceptions recorded per action
func (s *SQLiteStorage) CountByAction(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT action, COUNT(*) FROM interceptions GROUP BY action")
	if err != nil {
		return nil, fmt.Errorf("failed to count interceptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}

	return counts, rows.Err()
}
