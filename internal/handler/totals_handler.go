package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
)

type teacherTotalsSource interface {
	Month() time.Time
	TeacherTotals(ctx context.Context, metric aggregate.Metric) ([]aggregate.TeacherTotal, error)
}

// TotalsHandler serves the per-teacher monthly totals.
type TotalsHandler struct {
	pages
	totals teacherTotalsSource
}

// NewTotalsHandler constructs the handler.
func NewTotalsHandler(totals teacherTotalsSource, f flasher, logger *zap.Logger) *TotalsHandler {
	return &TotalsHandler{pages: newPages(f, logger), totals: totals}
}

// Page renders totals counted by ?metric=students|sessions.
func (h *TotalsHandler) Page(c *gin.Context) {
	metric := aggregate.ParseMetric(c.Query("metric"))
	totals, err := h.totals.TeacherTotals(c.Request.Context(), metric)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "totals.html", "Teacher Totals", "totals", gin.H{
		"Month":       h.totals.Month(),
		"Metric":      string(metric),
		"MetricTitle": metric.Title(),
		"Totals":      totals,
	})
}
