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

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string, limit int) ([]models.Lookup, error)
}

// TeacherRequest is the create/edit form for teachers.
type TeacherRequest struct {
	Name     string  `form:"name" json:"name" validate:"required,max=120"`
	Nickname *string `form:"nickname" json:"nickname" validate:"omitempty,max=120"`
}

var teacherMessages = map[string]string{
	"Name.required": "Teacher name cannot be empty.",
	"Name.max":      "Teacher name is too long.",
	"Nickname.max":  "Teacher nickname is too long.",
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo        teacherRepository
	audit       auditor
	searchLimit int
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, audit auditor, searchLimit int, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if searchLimit <= 0 {
		searchLimit = 20
	}
	return &TeacherService{repo: repo, audit: audit, searchLimit: searchLimit, validator: validate, logger: logger}
}

// List returns all teachers ordered by name.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list teachers")
	}
	return teachers, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, internalError(err, "failed to load teacher")
	}
	return teacher, nil
}

// Create registers a new teacher record.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Nickname = normalizeOptional(req.Nickname)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, teacherMessages, "invalid teacher payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{Name: req.Name, Nickname: req.Nickname}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, internalError(err, "failed to create teacher")
	}
	s.audit.Record(ctx, models.ActionAddTeacher, fmt.Sprintf("Added teacher %s (nickname=%s)", teacher.Name, optionalText(teacher.Nickname)))
	return teacher, nil
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req TeacherRequest) (*models.Teacher, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Nickname = normalizeOptional(req.Nickname)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, teacherMessages, "invalid teacher payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	teacher.Name = req.Name
	teacher.Nickname = req.Nickname
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, internalError(err, "failed to update teacher")
	}
	s.audit.Record(ctx, models.ActionEditTeacher, fmt.Sprintf("Updated teacher %s to %s (nickname=%s)", id, teacher.Name, optionalText(teacher.Nickname)))
	return teacher, nil
}

// Delete removes a teacher and its sessions.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete teacher")
	}
	s.audit.Record(ctx, models.ActionDeleteTeacher, fmt.Sprintf("Deleted teacher %s", teacher.Name))
	return nil
}

// Search returns teachers whose names contain q. An empty q yields an empty list.
func (s *TeacherService) Search(ctx context.Context, q string) ([]models.Lookup, error) {
	if strings.TrimSpace(q) == "" {
		return []models.Lookup{}, nil
	}
	items, err := s.repo.Search(ctx, q, s.searchLimit)
	if err != nil {
		return nil, internalError(err, "failed to search teachers")
	}
	return items, nil
}

func (s *TeacherService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return internalError(err, "failed to check teacher name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "Teacher already exists.")
	}
	return nil
}
