package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kiosk-signage-backend/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS mutation_history (
	id TEXT PRIMARY KEY,
	kiosk_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('upload','delete','reload')),
	object_key TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mutation_history_kiosk ON mutation_history(kiosk_id, created_at);
`

// HistoryStore records uploads, deletes and forced reloads in sqlite so
// operators can audit what happened on an unattended kiosk.
type HistoryStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(ctx context.Context, path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one history row.
func (s *HistoryStore) Record(ctx context.Context, kioskID, action, objectKey string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO mutation_history(id, kiosk_id, action, object_key, created_at)
VALUES (?, ?, ?, ?, ?)
`, uuid.NewString(), kioskID, action, objectKey, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Recent returns the newest history rows for a kiosk, newest first.
func (s *HistoryStore) Recent(ctx context.Context, kioskID string, limit int) ([]models.MutationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kiosk_id, action, object_key, created_at
FROM mutation_history
WHERE kiosk_id = ?
ORDER BY created_at DESC
LIMIT ?
`, kioskID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []models.MutationRecord
	for rows.Next() {
		var rec models.MutationRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.KioskID, &rec.Action, &rec.ObjectKey, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
