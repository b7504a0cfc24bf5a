package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

const teacherColumns = "id, name, nickname, created_at, updated_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns all teachers ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers ORDER BY name ASC"
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := r.db.Rebind("SELECT " + teacherColumns + " FROM teachers WHERE id = ?")
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByName checks if another teacher uses the same name.
func (r *TeacherRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	return existsByName(ctx, r.db, "teachers", name, excludeID)
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (id, name, nickname, created_at, updated_at)
		VALUES (:id, :name, :nickname, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update modifies an existing teacher record.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET name = :name, nickname = :nickname, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher together with its sessions and their attendance rows.
func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, "teacher delete", func(tx *sqlx.Tx) error {
		return execAll(ctx, tx, []statement{
			{"delete teacher attendance", "DELETE FROM attendance WHERE session_id IN (SELECT id FROM class_sessions WHERE teacher_id = ?)", []interface{}{id}},
			{"delete teacher sessions", "DELETE FROM class_sessions WHERE teacher_id = ?", []interface{}{id}},
			{"delete teacher", "DELETE FROM teachers WHERE id = ?", []interface{}{id}},
		})
	})
}

// Search returns teachers whose name contains term.
func (r *TeacherRepository) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	return searchByName(ctx, r.db, "teachers", term, limit)
}
