package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
)

type timetableService interface {
	Home(ctx context.Context, teacherID string) (*service.HomeView, error)
	Weekly(ctx context.Context) (aggregate.WeeklyGrid, []models.SessionView, error)
}

// TimetableHandler serves the monthly and weekly timetable pages.
type TimetableHandler struct {
	pages
	timetable timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(timetable timetableService, f flasher, logger *zap.Logger) *TimetableHandler {
	return &TimetableHandler{pages: newPages(f, logger), timetable: timetable}
}

// Home shows the selected teacher's sessions this month, grouped by day.
func (h *TimetableHandler) Home(c *gin.Context) {
	view, err := h.timetable.Home(c.Request.Context(), c.Query("teacher_id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "home.html", "Timetable", "home", gin.H{"View": view})
}

// Weekly shows the combined and per-teacher grids for the current week.
func (h *TimetableHandler) Weekly(c *gin.Context) {
	grid, _, err := h.timetable.Weekly(c.Request.Context())
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "weekly.html", "Weekly Timetable", "weekly", gin.H{"Grid": grid})
}
