package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

// AttendanceRepository persists attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FindByID fetches an attendance record by ID.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	query := r.db.Rebind("SELECT id, session_id, student_id, status, recorded_at FROM attendance WHERE id = ?")
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, id); err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListInRange returns attendance for sessions dated inside the half-open range.
func (r *AttendanceRepository) ListInRange(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error) {
	const query = `
SELECT a.id, a.session_id, a.student_id, a.status, a.recorded_at,
	cs.session_date AS session_date,
	cs.start_time AS start_time,
	t.name AS teacher_name,
	st.name AS student_name,
	su.name AS subject_name
FROM attendance a
JOIN class_sessions cs ON cs.id = a.session_id
JOIN teachers t ON t.id = cs.teacher_id
JOIN students st ON st.id = a.student_id
JOIN subjects su ON su.id = cs.subject_id
WHERE cs.session_date >= ? AND cs.session_date < ?
ORDER BY cs.session_date ASC, cs.start_time ASC, st.name ASC`
	var records []models.AttendanceView
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// Create inserts an attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = uuid.NewString()
	}
	if attendance.RecordedAt.IsZero() {
		attendance.RecordedAt = time.Now().UTC()
	}

	const query = `INSERT INTO attendance (id, session_id, student_id, status, recorded_at)
		VALUES (:id, :session_id, :student_id, :status, :recorded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update modifies an attendance record.
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	const query = `UPDATE attendance SET session_id = :session_id, student_id = :student_id, status = :status WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM attendance WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
