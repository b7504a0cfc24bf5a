package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

const studentColumns = "id, name, rate_per_class, email, phone, parent_name, address, created_at, updated_at"

// StudentRepository handles persistence for students and their subject memberships.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY name ASC"
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID retrieves a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := r.db.Rebind("SELECT " + studentColumns + " FROM students WHERE id = ?")
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByName checks if another student uses the same name.
func (r *StudentRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	return existsByName(ctx, r.db, "students", name, excludeID)
}

// Create inserts the student and its memberships.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student, subjectIDs []string) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now

	return inTx(ctx, r.db, "student create", func(tx *sqlx.Tx) error {
		const query = `INSERT INTO students (id, name, rate_per_class, email, phone, parent_name, address, created_at, updated_at)
			VALUES (:id, :name, :rate_per_class, :email, :phone, :parent_name, :address, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, student); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		return insertMemberships(ctx, tx, student.ID, subjectIDs, now)
	})
}

// Update applies changes to the student and replaces its memberships.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student, subjectIDs []string) error {
	now := time.Now().UTC()
	student.UpdatedAt = now

	return inTx(ctx, r.db, "student update", func(tx *sqlx.Tx) error {
		const query = `UPDATE students SET name = :name, rate_per_class = :rate_per_class, email = :email, phone = :phone,
			parent_name = :parent_name, address = :address, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, student); err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM student_subjects WHERE student_id = ?"), student.ID); err != nil {
			return fmt.Errorf("clear student subjects: %w", err)
		}
		return insertMemberships(ctx, tx, student.ID, subjectIDs, now)
	})
}

func insertMemberships(ctx context.Context, tx *sqlx.Tx, studentID string, subjectIDs []string, now time.Time) error {
	query := tx.Rebind("INSERT INTO student_subjects (student_id, subject_id, created_at) VALUES (?, ?, ?)")
	for _, subjectID := range subjectIDs {
		if _, err := tx.ExecContext(ctx, query, studentID, subjectID, now); err != nil {
			return fmt.Errorf("insert student subject: %w", err)
		}
	}
	return nil
}

// Delete removes a student with its sessions, attendance, payments and memberships.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, "student delete", func(tx *sqlx.Tx) error {
		return execAll(ctx, tx, []statement{
			{"delete student attendance", "DELETE FROM attendance WHERE student_id = ? OR session_id IN (SELECT id FROM class_sessions WHERE student_id = ?)", []interface{}{id, id}},
			{"delete student sessions", "DELETE FROM class_sessions WHERE student_id = ?", []interface{}{id}},
			{"delete student payments", "DELETE FROM payments WHERE student_id = ?", []interface{}{id}},
			{"delete student subjects", "DELETE FROM student_subjects WHERE student_id = ?", []interface{}{id}},
			{"delete student", "DELETE FROM students WHERE id = ?", []interface{}{id}},
		})
	})
}

// SubjectIDs lists the subjects a student is enrolled in.
func (r *StudentRepository) SubjectIDs(ctx context.Context, studentID string) ([]string, error) {
	query := r.db.Rebind("SELECT subject_id FROM student_subjects WHERE student_id = ?")
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list student subjects: %w", err)
	}
	return ids, nil
}

// ListEnrollments returns every membership pair with names and subject price resolved.
func (r *StudentRepository) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	const query = `
SELECT
	st.id AS student_id,
	st.name AS student_name,
	su.id AS subject_id,
	su.name AS subject_name,
	su.price AS price
FROM student_subjects ss
JOIN students st ON st.id = ss.student_id
JOIN subjects su ON su.id = ss.subject_id
ORDER BY st.name ASC, su.name ASC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Search returns students whose name contains term.
func (r *StudentRepository) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	return searchByName(ctx, r.db, "students", term, limit)
}
