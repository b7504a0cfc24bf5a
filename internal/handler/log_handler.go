package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
)

type logSource interface {
	Recent(ctx context.Context) ([]models.LogEntry, error)
}

// LogHandler lists the audit trail.
type LogHandler struct {
	pages
	logs logSource
}

// NewLogHandler constructs the handler.
func NewLogHandler(logs logSource, f flasher, logger *zap.Logger) *LogHandler {
	return &LogHandler{pages: newPages(f, logger), logs: logs}
}

// List renders the latest entries, newest first.
func (h *LogHandler) List(c *gin.Context) {
	entries, err := h.logs.Recent(c.Request.Context())
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "logs.html", "Logs", "logs", gin.H{"Entries": entries})
}
