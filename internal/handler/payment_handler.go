package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
)

type paymentService interface {
	Record(ctx context.Context, req service.PaymentRequest) (*models.Payment, error)
	Delete(ctx context.Context, id string) error
	Ledger(ctx context.Context) ([]aggregate.LedgerRow, error)
	List(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error)
}

type duesSource interface {
	Month() time.Time
	StudentDues(ctx context.Context) ([]aggregate.StudentDue, error)
}

// PaymentHandler serves monthly dues, balances and recorded payments.
type PaymentHandler struct {
	pages
	payments paymentService
	dues     duesSource
	students studentLister
	subjects subjectLister
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(payments paymentService, dues duesSource, students studentLister, subjects subjectLister, f flasher, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		pages:    newPages(f, logger),
		payments: payments,
		dues:     dues,
		students: students,
		subjects: subjects,
	}
}

// Page renders the dues for this month, the balance per membership and this month's payments.
func (h *PaymentHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	month := h.dues.Month()

	dues, err := h.dues.StudentDues(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	ledger, err := h.payments.Ledger(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	records, err := h.payments.List(ctx, models.MonthRange(month))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	students, err := h.students.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	subjects, err := h.subjects.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}

	h.render(c, "payments.html", "Payments", "payments", gin.H{
		"Month":    month,
		"Today":    month.Format(models.DateLayout),
		"Dues":     dues,
		"Ledger":   ledger,
		"Payments": records,
		"Students": students,
		"Subjects": subjects,
	})
}

// Record stores a payment from the form.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req service.PaymentRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/payments")
		return
	}
	if _, err := h.payments.Record(c.Request.Context(), req); err != nil {
		h.fail(c, err, "/payments")
		return
	}
	h.done(c, "Payment recorded.", "/payments")
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/payments")
		return
	}
	h.done(c, "Payment deleted.", "/payments")
}
