package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
)

type attendanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attendance, error)
	ListInRange(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id string) error
}

// AttendanceRequest marks how a student attended a session. StudentID defaults to the session's student.
type AttendanceRequest struct {
	SessionID string                  `form:"session_id" json:"session_id" validate:"required"`
	StudentID string                  `form:"student_id" json:"student_id"`
	Status    models.AttendanceStatus `form:"status" json:"status" validate:"required"`
}

// AttendanceService records attendance.
type AttendanceService struct {
	repo      attendanceRepository
	sessions  sessionRepository
	students  studentRepository
	audit     auditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceRepository, sessions sessionRepository, students studentRepository, audit auditor, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, sessions: sessions, students: students, audit: audit, validator: validate, logger: logger}
}

// List returns attendance for sessions inside rng.
func (s *AttendanceService) List(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error) {
	records, err := s.repo.ListInRange(ctx, rng)
	if err != nil {
		return nil, internalError(err, "failed to list attendance")
	}
	return records, nil
}

// Get returns an attendance record.
func (s *AttendanceService) Get(ctx context.Context, id string) (*models.Attendance, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance not found")
		}
		return nil, internalError(err, "failed to load attendance")
	}
	return record, nil
}

// Create records attendance.
func (s *AttendanceService) Create(ctx context.Context, req AttendanceRequest) (*models.Attendance, error) {
	record := &models.Attendance{}
	if err := s.prepare(ctx, req, record); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, internalError(err, "failed to record attendance")
	}
	s.audit.Record(ctx, models.ActionAddAttendance, fmt.Sprintf("Session=%s, Student=%s, Status=%s", record.SessionID, record.StudentID, record.Status))
	return record, nil
}

// Update changes an attendance record.
func (s *AttendanceService) Update(ctx context.Context, id string, req AttendanceRequest) (*models.Attendance, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, req, record); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, internalError(err, "failed to update attendance")
	}
	s.audit.Record(ctx, models.ActionEditAttendance, fmt.Sprintf("Attendance %s: Session=%s, Student=%s, Status=%s", id, record.SessionID, record.StudentID, record.Status))
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete attendance")
	}
	s.audit.Record(ctx, models.ActionDeleteAttendance, fmt.Sprintf("Deleted attendance %s (session=%s, student=%s)", id, record.SessionID, record.StudentID))
	return nil
}

func (s *AttendanceService) prepare(ctx context.Context, req AttendanceRequest, record *models.Attendance) error {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, map[string]string{
			"SessionID": "Session is required.",
			"Status":    "Attendance status is required.",
		}, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return appErrors.Validation("Invalid attendance status.")
	}

	session, err := s.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return referenceError(err, "session")
	}
	studentID := req.StudentID
	if studentID == "" {
		studentID = session.StudentID
	} else if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return referenceError(err, "student")
	}

	record.SessionID = session.ID
	record.StudentID = studentID
	record.Status = req.Status
	return nil
}
