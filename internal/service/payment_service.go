package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
)

type paymentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	ListInRange(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error)
	SumByMembership(ctx context.Context) (map[models.MembershipKey]float64, error)
	Create(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id string) error
}

// PaymentRequest records money received. PaymentDate defaults to today and Method to cash.
type PaymentRequest struct {
	StudentID   string  `form:"student_id" json:"student_id" validate:"required"`
	SubjectID   string  `form:"subject_id" json:"subject_id" validate:"required"`
	Amount      float64 `form:"amount" json:"amount" validate:"finite,gt=0"`
	PaymentDate string  `form:"payment_date" json:"payment_date"`
	Method      string  `form:"method" json:"method" validate:"max=50"`
}

var paymentMessages = map[string]string{
	"StudentID":     "Student and subject are required.",
	"SubjectID":     "Student and subject are required.",
	"Amount":        "Amount must be greater than zero.",
	"Amount.finite": "Amount must be a number.",
	"Method":        "Payment method is too long.",
}

// PaymentService records payments and computes balances.
type PaymentService struct {
	repo      paymentRepository
	students  studentRepository
	subjects  subjectRepository
	audit     auditor
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(repo paymentRepository, students studentRepository, subjects subjectRepository, audit auditor, clock Clock, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, students: students, subjects: subjects, audit: audit, clock: clock, validator: validate, logger: logger}
}

// Record inserts a payment. Nothing is written when any field is missing or invalid.
func (s *PaymentService) Record(ctx context.Context, req PaymentRequest) (*models.Payment, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	req.Method = strings.TrimSpace(req.Method)
	req.Amount = cents(req.Amount)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, paymentMessages, "invalid payment payload")
	}

	paymentDate := s.clock.Today().Format(models.DateLayout)
	if raw := strings.TrimSpace(req.PaymentDate); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return nil, appErrors.Validation("Payment date must be YYYY-MM-DD.")
		}
		paymentDate = parsed.Format(models.DateLayout)
	}
	method := req.Method
	if method == "" {
		method = models.DefaultPaymentMethod
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, referenceError(err, "student")
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		return nil, referenceError(err, "subject")
	}

	payment := &models.Payment{
		StudentID:   req.StudentID,
		SubjectID:   req.SubjectID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      method,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, internalError(err, "failed to record payment")
	}
	s.audit.Record(ctx, models.ActionAddPayment, fmt.Sprintf("Payment %.2f from %s for %s on %s (%s)", payment.Amount, student.Name, subject.Name, payment.PaymentDate, payment.Method))
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return internalError(err, "failed to load payment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete payment")
	}
	s.audit.Record(ctx, models.ActionDeletePayment, fmt.Sprintf("Deleted payment %s of %.2f (student=%s, subject=%s, date=%s)", id, payment.Amount, payment.StudentID, payment.SubjectID, payment.PaymentDate))
	return nil
}

// Ledger returns paid and outstanding amounts for every membership.
func (s *PaymentService) Ledger(ctx context.Context) ([]aggregate.LedgerRow, error) {
	enrollments, err := s.students.ListEnrollments(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	paid, err := s.repo.SumByMembership(ctx)
	if err != nil {
		return nil, internalError(err, "failed to sum payments")
	}
	return aggregate.Ledger(enrollments, paid), nil
}

// List returns the payments recorded inside rng.
func (s *PaymentService) List(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error) {
	payments, err := s.repo.ListInRange(ctx, rng)
	if err != nil {
		return nil, internalError(err, "failed to list payments")
	}
	return payments, nil
}
