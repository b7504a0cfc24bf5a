package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

const subjectColumns = "id, name, price, number_of_classes, discount_percent, created_at, updated_at"

// SubjectRepository provides access to subjects table.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query := "SELECT " + subjectColumns + " FROM subjects ORDER BY name ASC"
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	query := r.db.Rebind("SELECT " + subjectColumns + " FROM subjects WHERE id = ?")
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByName checks if another subject uses the same name.
func (r *SubjectRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	return existsByName(ctx, r.db, "subjects", name, excludeID)
}

// Create inserts a subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (id, name, price, number_of_classes, discount_percent, created_at, updated_at)
		VALUES (:id, :name, :price, :number_of_classes, :discount_percent, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies a subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, price = :price, number_of_classes = :number_of_classes,
		discount_percent = :discount_percent, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject with its sessions, their attendance, payments and memberships.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, "subject delete", func(tx *sqlx.Tx) error {
		return execAll(ctx, tx, []statement{
			{"delete subject attendance", "DELETE FROM attendance WHERE session_id IN (SELECT id FROM class_sessions WHERE subject_id = ?)", []interface{}{id}},
			{"delete subject sessions", "DELETE FROM class_sessions WHERE subject_id = ?", []interface{}{id}},
			{"delete subject payments", "DELETE FROM payments WHERE subject_id = ?", []interface{}{id}},
			{"delete subject memberships", "DELETE FROM student_subjects WHERE subject_id = ?", []interface{}{id}},
			{"delete subject", "DELETE FROM subjects WHERE id = ?", []interface{}{id}},
		})
	})
}

// ListByStudent returns the subjects a student is enrolled in, keyed by student id.
func (r *SubjectRepository) ListByStudent(ctx context.Context) (map[string][]models.Subject, error) {
	const query = `
SELECT ss.student_id AS student_id, s.id, s.name, s.price, s.number_of_classes, s.discount_percent, s.created_at, s.updated_at
FROM student_subjects ss
JOIN subjects s ON s.id = ss.subject_id
ORDER BY s.name ASC`
	var rows []struct {
		StudentID string `db:"student_id"`
		models.Subject
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list subjects by student: %w", err)
	}
	out := make(map[string][]models.Subject)
	for _, row := range rows {
		out[row.StudentID] = append(out[row.StudentID], row.Subject)
	}
	return out, nil
}

// Search returns subjects whose name contains term.
func (r *SubjectRepository) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	return searchByName(ctx, r.db, "subjects", term, limit)
}
