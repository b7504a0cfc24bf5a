package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

// PaymentRepository persists payments received from students.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// FindByID fetches a payment by ID.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	query := r.db.Rebind("SELECT id, student_id, subject_id, amount, payment_date, method, created_at FROM payments WHERE id = ?")
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListInRange returns payments dated inside the half-open range, newest first.
func (r *PaymentRepository) ListInRange(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error) {
	const query = `
SELECT p.id, p.student_id, p.subject_id, p.amount, p.payment_date, p.method, p.created_at,
	st.name AS student_name,
	su.name AS subject_name
FROM payments p
JOIN students st ON st.id = p.student_id
JOIN subjects su ON su.id = p.subject_id
WHERE p.payment_date >= ? AND p.payment_date < ?
ORDER BY p.payment_date DESC, p.created_at DESC`
	var payments []models.PaymentView
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(query), rng.From, rng.To); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// SumByMembership totals every payment per student/subject pair.
func (r *PaymentRepository) SumByMembership(ctx context.Context) (map[models.MembershipKey]float64, error) {
	const query = `SELECT student_id, subject_id, SUM(amount) AS paid FROM payments GROUP BY student_id, subject_id`
	var rows []struct {
		StudentID string  `db:"student_id"`
		SubjectID string  `db:"subject_id"`
		Paid      float64 `db:"paid"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	sums := make(map[models.MembershipKey]float64, len(rows))
	for _, row := range rows {
		sums[models.MembershipKey{StudentID: row.StudentID, SubjectID: row.SubjectID}] = row.Paid
	}
	return sums, nil
}

// Create inserts a payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO payments (id, student_id, subject_id, amount, payment_date, method, created_at)
		VALUES (:id, :student_id, :subject_id, :amount, :payment_date, :method, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM payments WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
