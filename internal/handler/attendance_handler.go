package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
)

type attendanceService interface {
	List(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error)
	Get(ctx context.Context, id string) (*models.Attendance, error)
	Create(ctx context.Context, req service.AttendanceRequest) (*models.Attendance, error)
	Update(ctx context.Context, id string, req service.AttendanceRequest) (*models.Attendance, error)
	Delete(ctx context.Context, id string) error
}

type monthSessionSource interface {
	MonthSessions(ctx context.Context) ([]models.SessionView, error)
}

// AttendanceHandler serves attendance records.
type AttendanceHandler struct {
	pages
	attendance attendanceService
	sessions   monthSessionSource
	students   studentLister
	clock      service.Clock
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance attendanceService, sessions monthSessionSource, students studentLister, clock service.Clock, f flasher, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		pages:      newPages(f, logger),
		attendance: attendance,
		sessions:   sessions,
		students:   students,
		clock:      clock,
	}
}

// List renders attendance between ?from and ?to (inclusive, default this month) and the record form.
func (h *AttendanceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	rng, first, last, err := h.clock.Range(c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err, "/attendance")
		return
	}
	records, err := h.attendance.List(ctx, rng)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	sessions, err := h.sessions.MonthSessions(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "attendance.html", "Attendance", "attendance", gin.H{
		"Records":  records,
		"Sessions": sessions,
		"From":     first.Format(models.DateLayout),
		"To":       last.Format(models.DateLayout),
	})
}

func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.AttendanceRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/attendance")
		return
	}
	if _, err := h.attendance.Create(c.Request.Context(), req); err != nil {
		h.fail(c, err, "/attendance")
		return
	}
	h.done(c, "Attendance recorded.", "/attendance")
}

func (h *AttendanceHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	record, err := h.attendance.Get(ctx, c.Param("id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	sessions, err := h.sessions.MonthSessions(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	students, err := h.students.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "attendance_edit.html", "Edit Attendance", "attendance", gin.H{
		"Record":   record,
		"Sessions": sessions,
		"Students": students,
	})
}

func (h *AttendanceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/attendance/" + id + "/edit"
	var req service.AttendanceRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if _, err := h.attendance.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err, back)
		return
	}
	h.done(c, "Attendance updated.", "/attendance")
}

func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/attendance")
		return
	}
	h.done(c, "Attendance deleted.", "/attendance")
}
