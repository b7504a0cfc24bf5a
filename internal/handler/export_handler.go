package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/service"
	"github.com/noah-isme/el-timetable/pkg/response"
)

type exportService interface {
	Weekly(ctx context.Context, format string) (*service.ExportFile, error)
	Payments(ctx context.Context, format string) (*service.ExportFile, error)
	Totals(ctx context.Context, format string, metric aggregate.Metric) (*service.ExportFile, error)
	Students(ctx context.Context, format string) (*service.ExportFile, error)
	PaymentRecords(ctx context.Context, format, from, to string) (*service.ExportFile, error)
	Attendance(ctx context.Context, format, from, to string) (*service.ExportFile, error)
}

// ExportHandler streams downloads. Failures are flashed on the page the download belongs to.
type ExportHandler struct {
	pages
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService, f flasher, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{pages: newPages(f, logger), exports: exports}
}

// Weekly godoc
// @Summary Download this week's sessions
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Success 200 {file} file
// @Router /download_weekly/{format} [get]
func (h *ExportHandler) Weekly(c *gin.Context) {
	file, err := h.exports.Weekly(c.Request.Context(), c.Param("format"))
	h.send(c, file, err, "/weekly_timetable")
}

// Payments godoc
// @Summary Download this month's dues per student
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Success 200 {file} file
// @Router /download_payments/{format} [get]
func (h *ExportHandler) Payments(c *gin.Context) {
	file, err := h.exports.Payments(c.Request.Context(), c.Param("format"))
	h.send(c, file, err, "/payments")
}

// Totals godoc
// @Summary Download this month's teacher totals
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Param metric query string false "students (default) or sessions"
// @Success 200 {file} file
// @Router /download_totals/{format} [get]
func (h *ExportHandler) Totals(c *gin.Context) {
	file, err := h.exports.Totals(c.Request.Context(), c.Param("format"), aggregate.ParseMetric(c.Query("metric")))
	h.send(c, file, err, "/teacher_totals")
}

// Students godoc
// @Summary Export the student roster
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Success 200 {file} file
// @Router /export/students/{format} [get]
func (h *ExportHandler) Students(c *gin.Context) {
	file, err := h.exports.Students(c.Request.Context(), c.Param("format"))
	h.send(c, file, err, "/students")
}

// PaymentRecords godoc
// @Summary Export recorded payments
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Router /export/payments/{format} [get]
func (h *ExportHandler) PaymentRecords(c *gin.Context) {
	file, err := h.exports.PaymentRecords(c.Request.Context(), c.Param("format"), c.Query("from"), c.Query("to"))
	h.send(c, file, err, "/payments")
}

// Attendance godoc
// @Summary Export attendance
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "csv, excel or pdf"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Router /export/attendance/{format} [get]
func (h *ExportHandler) Attendance(c *gin.Context) {
	file, err := h.exports.Attendance(c.Request.Context(), c.Param("format"), c.Query("from"), c.Query("to"))
	h.send(c, file, err, "/attendance")
}

func (h *ExportHandler) send(c *gin.Context, file *service.ExportFile, err error, back string) {
	if err != nil {
		h.fail(c, err, back)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
