package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

// LogRepository appends and reads audit log entries.
type LogRepository struct {
	db *sqlx.DB
}

// NewLogRepository constructs the repository.
func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create appends an entry.
func (r *LogRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO log_entries (id, action, details, created_at) VALUES (:id, :action, :details, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create log entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *LogRepository) ListRecent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	query := fmt.Sprintf("SELECT id, action, details, created_at FROM log_entries ORDER BY created_at DESC LIMIT %d", limit)
	var entries []models.LogEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	return entries, nil
}
