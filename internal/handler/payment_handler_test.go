package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
	"github.com/noah-isme/el-timetable/pkg/flash"
)

type fakePaymentService struct {
	recorded []service.PaymentRequest
	err      error
	ranges   []models.DateRange
}

func (f *fakePaymentService) Record(ctx context.Context, req service.PaymentRequest) (*models.Payment, error) {
	f.recorded = append(f.recorded, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Payment{ID: "p1"}, nil
}

func (f *fakePaymentService) Delete(ctx context.Context, id string) error {
	if id != "p1" {
		return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	return nil
}

func (f *fakePaymentService) Ledger(ctx context.Context) ([]aggregate.LedgerRow, error) {
	return []aggregate.LedgerRow{{StudentName: "Ana", SubjectName: "Math", Price: 200, Paid: 130, Outstanding: 70}}, nil
}

func (f *fakePaymentService) List(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error) {
	f.ranges = append(f.ranges, rng)
	return []models.PaymentView{{
		Payment:     models.Payment{ID: "p1", Amount: 130, PaymentDate: "2026-10-02", Method: "transfer"},
		StudentName: "Ana",
		SubjectName: "Math",
	}}, nil
}

type stubDues struct{}

func (stubDues) Month() time.Time {
	return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)
}

func (stubDues) StudentDues(ctx context.Context) ([]aggregate.StudentDue, error) {
	return []aggregate.StudentDue{{StudentName: "Ana", RatePerClass: 25, Classes: 4, Total: 100}}, nil
}

func newPaymentRoutes(t *testing.T, svc *fakePaymentService, flashes *fakeFlasher) http.Handler {
	r := newTestEngine(t)
	h := NewPaymentHandler(svc, stubDues{}, stubStudents{}, stubSubjects{}, flashes, nil)
	r.GET("/payments", h.Page)
	r.POST("/payments", h.Record)
	r.POST("/payments/:id/delete", h.Delete)
	return r
}

func TestPaymentHandlerPage(t *testing.T) {
	svc := &fakePaymentService{}
	r := newPaymentRoutes(t, svc, &fakeFlasher{})

	rec := doGet(r, "/payments")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Payments October 2026")
	assert.Contains(t, body, "100.00")
	assert.Contains(t, body, "70.00")
	assert.Contains(t, body, "transfer")
	require.Len(t, svc.ranges, 1)
	assert.Equal(t, models.DateRange{From: "2026-10-01", To: "2026-11-01"}, svc.ranges[0])
}

func TestPaymentHandlerRecord(t *testing.T) {
	svc := &fakePaymentService{}
	flashes := &fakeFlasher{}
	r := newPaymentRoutes(t, svc, flashes)

	rec := doPost(r, "/payments", url.Values{"student_id": {"s1"}, "subject_id": {"math"}, "amount": {"50.5"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/payments", rec.Header().Get("Location"))
	assert.Equal(t, flash.Message{Kind: flash.Success, Text: "Payment recorded."}, flashes.last())
	require.Len(t, svc.recorded, 1)
	assert.Equal(t, 50.5, svc.recorded[0].Amount)
}

func TestPaymentHandlerRecordRejectsMalformedAmount(t *testing.T) {
	svc := &fakePaymentService{}
	flashes := &fakeFlasher{}
	r := newPaymentRoutes(t, svc, flashes)

	rec := doPost(r, "/payments", url.Values{"student_id": {"s1"}, "subject_id": {"math"}, "amount": {"lots"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "Please enter valid numbers.", flashes.last().Text)
	assert.Empty(t, svc.recorded)
}

func TestPaymentHandlerDeleteMissing(t *testing.T) {
	r := newPaymentRoutes(t, &fakePaymentService{}, &fakeFlasher{})

	rec := doPost(r, "/payments/nope/delete", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "payment not found")
}
