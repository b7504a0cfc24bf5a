package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

const sessionColumns = "id, teacher_id, student_id, subject_id, session_date, start_time, end_time, notes, created_at, updated_at"

const sessionViewSelect = `
SELECT
	cs.id, cs.teacher_id, cs.student_id, cs.subject_id, cs.session_date, cs.start_time, cs.end_time, cs.notes, cs.created_at, cs.updated_at,
	t.name AS teacher_name,
	t.nickname AS teacher_nickname,
	st.name AS student_name,
	su.name AS subject_name
FROM class_sessions cs
JOIN teachers t ON t.id = cs.teacher_id
JOIN students st ON st.id = cs.student_id
JOIN subjects su ON su.id = cs.subject_id`

// SessionRepository persists class sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByID fetches a session by ID.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	query := r.db.Rebind("SELECT " + sessionColumns + " FROM class_sessions WHERE id = ?")
	var session models.ClassSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListInRange returns sessions dated inside the half-open range, ordered by date and start time.
func (r *SessionRepository) ListInRange(ctx context.Context, rng models.DateRange) ([]models.SessionView, error) {
	return r.list(ctx, "", rng)
}

// ListByTeacherInRange narrows ListInRange to one teacher.
func (r *SessionRepository) ListByTeacherInRange(ctx context.Context, teacherID string, rng models.DateRange) ([]models.SessionView, error) {
	return r.list(ctx, teacherID, rng)
}

func (r *SessionRepository) list(ctx context.Context, teacherID string, rng models.DateRange) ([]models.SessionView, error) {
	var query strings.Builder
	query.WriteString(sessionViewSelect)
	query.WriteString("\nWHERE cs.session_date >= ? AND cs.session_date < ?")
	args := []interface{}{rng.From, rng.To}
	if teacherID != "" {
		query.WriteString(" AND cs.teacher_id = ?")
		args = append(args, teacherID)
	}
	query.WriteString("\nORDER BY cs.session_date ASC, cs.start_time ASC")

	var sessions []models.SessionView
	if err := r.db.SelectContext(ctx, &sessions, r.db.Rebind(query.String()), args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, session *models.ClassSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO class_sessions (id, teacher_id, student_id, subject_id, session_date, start_time, end_time, notes, created_at, updated_at)
		VALUES (:id, :teacher_id, :student_id, :subject_id, :session_date, :start_time, :end_time, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update modifies a session.
func (r *SessionRepository) Update(ctx context.Context, session *models.ClassSession) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_sessions SET teacher_id = :teacher_id, student_id = :student_id, subject_id = :subject_id,
		session_date = :session_date, start_time = :start_time, end_time = :end_time, notes = :notes, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Delete removes a session and its attendance rows.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, "session delete", func(tx *sqlx.Tx) error {
		return execAll(ctx, tx, []statement{
			{"delete session attendance", "DELETE FROM attendance WHERE session_id = ?", []interface{}{id}},
			{"delete session", "DELETE FROM class_sessions WHERE id = ?", []interface{}{id}},
		})
	})
}
