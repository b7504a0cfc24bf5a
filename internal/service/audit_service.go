package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
)

type logRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.LogEntry, error)
}

// auditor records a mutation after it has been committed.
type auditor interface {
	Record(ctx context.Context, action, details string)
}

type auditFailureRecorder interface {
	RecordAuditFailure(action string)
}

// AuditService appends log entries and lists the latest ones.
type AuditService struct {
	repo     logRepository
	pageSize int
	metrics  auditFailureRecorder
	logger   *zap.Logger
}

// NewAuditService constructs the audit trail writer. pageSize bounds Recent.
func NewAuditService(repo logRepository, pageSize int, metrics auditFailureRecorder, logger *zap.Logger) *AuditService {
	if pageSize <= 0 {
		pageSize = 200
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, pageSize: pageSize, metrics: metrics, logger: logger}
}

// Record appends an entry. Failures are logged and never returned: the mutation being
// audited is already committed.
func (s *AuditService) Record(ctx context.Context, action, details string) {
	entry := &models.LogEntry{Action: action, Details: details}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.String("details", details), zap.Error(err))
		if s.metrics != nil {
			s.metrics.RecordAuditFailure(action)
		}
	}
}

// Recent returns the latest entries, newest first.
func (s *AuditService) Recent(ctx context.Context) ([]models.LogEntry, error) {
	entries, err := s.repo.ListRecent(ctx, s.pageSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list logs")
	}
	return entries, nil
}
