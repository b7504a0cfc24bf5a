package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
)

type sessionRepository interface {
	FindByID(ctx context.Context, id string) (*models.ClassSession, error)
	ListInRange(ctx context.Context, rng models.DateRange) ([]models.SessionView, error)
	ListByTeacherInRange(ctx context.Context, teacherID string, rng models.DateRange) ([]models.SessionView, error)
	Create(ctx context.Context, session *models.ClassSession) error
	Update(ctx context.Context, session *models.ClassSession) error
	Delete(ctx context.Context, id string) error
}

// SessionRequest is the add/edit session form. Dates are YYYY-MM-DD and times HH:MM.
type SessionRequest struct {
	TeacherID   string  `form:"teacher_id" json:"teacher_id" validate:"required"`
	StudentID   string  `form:"student_id" json:"student_id" validate:"required"`
	SubjectID   string  `form:"subject_id" json:"subject_id" validate:"required"`
	SessionDate string  `form:"session_date" json:"session_date" validate:"required"`
	StartTime   string  `form:"start_time" json:"start_time" validate:"required"`
	EndTime     string  `form:"end_time" json:"end_time" validate:"required"`
	Notes       *string `form:"notes" json:"notes" validate:"omitempty,max=255"`
}

const (
	msgSessionFields = "All fields are required and must be valid."
	msgSessionOrder  = "End time must be after start time."
)

// SessionService schedules class sessions.
type SessionService struct {
	repo      sessionRepository
	teachers  teacherRepository
	students  studentRepository
	subjects  subjectRepository
	audit     auditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(repo sessionRepository, teachers teacherRepository, students studentRepository, subjects subjectRepository, audit auditor, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, teachers: teachers, students: students, subjects: subjects, audit: audit, validator: validate, logger: logger}
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*models.ClassSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, internalError(err, "failed to load session")
	}
	return session, nil
}

// Create schedules a session.
func (s *SessionService) Create(ctx context.Context, req SessionRequest) (*models.ClassSession, error) {
	session := &models.ClassSession{}
	if err := s.prepare(ctx, req, session); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, internalError(err, "failed to create session")
	}
	s.audit.Record(ctx, models.ActionAddSession, describeSession(session))
	return session, nil
}

// Update reschedules a session.
func (s *SessionService) Update(ctx context.Context, id string, req SessionRequest) (*models.ClassSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, req, session); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, internalError(err, "failed to update session")
	}
	s.audit.Record(ctx, models.ActionEditSession, fmt.Sprintf("Session %s: %s", id, describeSession(session)))
	return session, nil
}

// Delete removes a session and returns it so callers can return to the teacher's timetable.
func (s *SessionService) Delete(ctx context.Context, id string) (*models.ClassSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, internalError(err, "failed to delete session")
	}
	s.audit.Record(ctx, models.ActionDeleteSession, fmt.Sprintf("Deleted session %s: %s", id, describeSession(session)))
	return session, nil
}

// prepare validates req and copies the normalised values onto session.
func (s *SessionService) prepare(ctx context.Context, req SessionRequest, session *models.ClassSession) error {
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	req.Notes = normalizeOptional(req.Notes)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, map[string]string{"Notes": "Notes are too long."}, msgSessionFields)
	}

	date, err := time.Parse(models.DateLayout, strings.TrimSpace(req.SessionDate))
	if err != nil {
		return appErrors.Validation(msgSessionFields)
	}
	start, err := time.Parse(models.ClockLayout, strings.TrimSpace(req.StartTime))
	if err != nil {
		return appErrors.Validation(msgSessionFields)
	}
	end, err := time.Parse(models.ClockLayout, strings.TrimSpace(req.EndTime))
	if err != nil {
		return appErrors.Validation(msgSessionFields)
	}
	if !end.After(start) {
		return appErrors.Validation(msgSessionOrder)
	}

	if err := s.ensureReferences(ctx, req); err != nil {
		return err
	}

	session.TeacherID = req.TeacherID
	session.StudentID = req.StudentID
	session.SubjectID = req.SubjectID
	session.SessionDate = date.Format(models.DateLayout)
	session.StartTime = start.Format(models.ClockLayout)
	session.EndTime = end.Format(models.ClockLayout)
	session.Notes = req.Notes
	return nil
}

func (s *SessionService) ensureReferences(ctx context.Context, req SessionRequest) error {
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		return referenceError(err, "teacher")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return referenceError(err, "student")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		return referenceError(err, "subject")
	}
	return nil
}

func referenceError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Validation(fmt.Sprintf("Selected %s does not exist.", entity))
	}
	return internalError(err, "failed to load "+entity)
}

func describeSession(s *models.ClassSession) string {
	return fmt.Sprintf("Teacher=%s, Student=%s, Subject=%s, Date=%s, %s-%s", s.TeacherID, s.StudentID, s.SubjectID, s.SessionDate, s.StartTime, s.EndTime)
}
