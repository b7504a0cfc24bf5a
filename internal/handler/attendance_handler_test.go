package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
	"github.com/noah-isme/el-timetable/pkg/flash"
)

type fakeAttendanceService struct {
	ranges   []models.DateRange
	requests []service.AttendanceRequest
	err      error
}

func (f *fakeAttendanceService) List(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error) {
	f.ranges = append(f.ranges, rng)
	return []models.AttendanceView{{
		Attendance:  models.Attendance{ID: "a1", Status: models.AttendanceArrived},
		SessionDate: "2026-10-05",
		StartTime:   "10:00",
		TeacherName: "Alice",
		StudentName: "Ana",
		SubjectName: "Math",
	}}, nil
}

func (f *fakeAttendanceService) Get(ctx context.Context, id string) (*models.Attendance, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance not found")
}

func (f *fakeAttendanceService) Create(ctx context.Context, req service.AttendanceRequest) (*models.Attendance, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Attendance{ID: "a2"}, nil
}

func (f *fakeAttendanceService) Update(ctx context.Context, id string, req service.AttendanceRequest) (*models.Attendance, error) {
	f.requests = append(f.requests, req)
	return nil, f.err
}

func (f *fakeAttendanceService) Delete(ctx context.Context, id string) error {
	return f.err
}

type stubMonthSessions struct{}

func (stubMonthSessions) MonthSessions(ctx context.Context) ([]models.SessionView, error) {
	return nil, nil
}

func newAttendanceRoutes(t *testing.T, svc *fakeAttendanceService, flashes *fakeFlasher) http.Handler {
	r := newTestEngine(t)
	h := NewAttendanceHandler(svc, stubMonthSessions{}, stubStudents{}, testClock(), flashes, nil)
	r.GET("/attendance", h.List)
	r.POST("/attendance", h.Create)
	r.GET("/attendance/:id/edit", h.Edit)
	r.POST("/attendance/:id/edit", h.Update)
	r.POST("/attendance/:id/delete", h.Delete)
	return r
}

func TestAttendanceHandlerListDefaultsToMonth(t *testing.T) {
	svc := &fakeAttendanceService{}
	r := newAttendanceRoutes(t, svc, &fakeFlasher{})

	rec := doGet(r, "/attendance")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.ranges, 1)
	assert.Equal(t, models.DateRange{From: "2026-10-01", To: "2026-11-01"}, svc.ranges[0])
	body := rec.Body.String()
	assert.Contains(t, body, `value="2026-10-01"`)
	assert.Contains(t, body, `value="2026-10-31"`)
	assert.Contains(t, body, "Ana")
}

func TestAttendanceHandlerListRange(t *testing.T) {
	svc := &fakeAttendanceService{}
	r := newAttendanceRoutes(t, svc, &fakeFlasher{})

	rec := doGet(r, "/attendance?from=2026-10-05&to=2026-10-07")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DateRange{From: "2026-10-05", To: "2026-10-08"}, svc.ranges[0])
}

func TestAttendanceHandlerListBadRange(t *testing.T) {
	svc := &fakeAttendanceService{}
	flashes := &fakeFlasher{}
	r := newAttendanceRoutes(t, svc, flashes)

	rec := doGet(r, "/attendance?from=bad")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/attendance", rec.Header().Get("Location"))
	assert.Equal(t, flash.Message{Kind: flash.Error, Text: "Dates must be YYYY-MM-DD."}, flashes.last())
	assert.Empty(t, svc.ranges)
}

func TestAttendanceHandlerCreate(t *testing.T) {
	svc := &fakeAttendanceService{}
	flashes := &fakeFlasher{}
	r := newAttendanceRoutes(t, svc, flashes)

	rec := doPost(r, "/attendance", url.Values{"session_id": {"s9"}, "status": {"Late"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "Attendance recorded.", flashes.last().Text)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, models.AttendanceLate, svc.requests[0].Status)
}

func TestAttendanceHandlerUpdateRejected(t *testing.T) {
	svc := &fakeAttendanceService{err: appErrors.Validation("Invalid attendance status.")}
	flashes := &fakeFlasher{}
	r := newAttendanceRoutes(t, svc, flashes)

	rec := doPost(r, "/attendance/a1/edit", url.Values{"session_id": {"s9"}, "status": {"sleeping"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/attendance/a1/edit", rec.Header().Get("Location"))
	assert.Equal(t, "Invalid attendance status.", flashes.last().Text)
}

func TestAttendanceHandlerEditMissing(t *testing.T) {
	r := newAttendanceRoutes(t, &fakeAttendanceService{}, &fakeFlasher{})

	rec := doGet(r, "/attendance/zzz/edit")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
