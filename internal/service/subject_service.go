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

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context) (map[string][]models.Subject, error)
	Search(ctx context.Context, term string, limit int) ([]models.Lookup, error)
}

// SubjectRequest is the create/edit form for subjects. An omitted class count defaults to 1.
type SubjectRequest struct {
	Name            string  `form:"name" json:"name" validate:"required,max=120"`
	Price           float64 `form:"price" json:"price" validate:"finite,gte=0"`
	NumberOfClasses int     `form:"number_of_classes" json:"number_of_classes" validate:"gte=1"`
	DiscountPercent float64 `form:"discount_percent" json:"discount_percent" validate:"finite,gte=0,lte=100"`
}

var subjectMessages = map[string]string{
	"Name.required":          "Subject name cannot be empty.",
	"Name.max":               "Subject name is too long.",
	"Price.finite":           "Price must be a number.",
	"Price":                  "Price must be zero or more.",
	"NumberOfClasses":        "Number of classes must be at least 1.",
	"DiscountPercent.finite": "Discount must be a number.",
	"DiscountPercent":        "Discount must be between 0 and 100.",
}

// SubjectService manages subjects.
type SubjectService struct {
	repo        subjectRepository
	audit       auditor
	searchLimit int
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSubjectService constructs the service.
func NewSubjectService(repo subjectRepository, audit auditor, searchLimit int, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if searchLimit <= 0 {
		searchLimit = 20
	}
	return &SubjectService{repo: repo, audit: audit, searchLimit: searchLimit, validator: validate, logger: logger}
}

// List returns all subjects ordered by name.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list subjects")
	}
	return subjects, nil
}

// Get fetches a subject.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, internalError(err, "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	req = s.normalize(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, subjectMessages, "invalid subject payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:            req.Name,
		Price:           req.Price,
		NumberOfClasses: req.NumberOfClasses,
		DiscountPercent: req.DiscountPercent,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, internalError(err, "failed to create subject")
	}
	s.audit.Record(ctx, models.ActionAddSubject, fmt.Sprintf("Added subject %s (price=%.2f, classes=%d, discount=%.2f%%)", subject.Name, subject.Price, subject.NumberOfClasses, subject.DiscountPercent))
	return subject, nil
}

// Update modifies a subject.
func (s *SubjectService) Update(ctx context.Context, id string, req SubjectRequest) (*models.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req = s.normalize(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, subjectMessages, "invalid subject payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	subject.Name = req.Name
	subject.Price = req.Price
	subject.NumberOfClasses = req.NumberOfClasses
	subject.DiscountPercent = req.DiscountPercent
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, internalError(err, "failed to update subject")
	}
	s.audit.Record(ctx, models.ActionEditSubject, fmt.Sprintf("Updated subject %s to %s (price=%.2f, classes=%d, discount=%.2f%%)", id, subject.Name, subject.Price, subject.NumberOfClasses, subject.DiscountPercent))
	return subject, nil
}

// Delete removes a subject with its sessions, payments and memberships.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete subject")
	}
	s.audit.Record(ctx, models.ActionDeleteSubject, fmt.Sprintf("Deleted subject %s", subject.Name))
	return nil
}

// Search returns subjects whose names contain q.
func (s *SubjectService) Search(ctx context.Context, q string) ([]models.Lookup, error) {
	if strings.TrimSpace(q) == "" {
		return []models.Lookup{}, nil
	}
	items, err := s.repo.Search(ctx, q, s.searchLimit)
	if err != nil {
		return nil, internalError(err, "failed to search subjects")
	}
	return items, nil
}

func (s *SubjectService) normalize(req SubjectRequest) SubjectRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Price = cents(req.Price)
	if req.NumberOfClasses == 0 {
		req.NumberOfClasses = 1
	}
	return req
}

func (s *SubjectService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return internalError(err, "failed to check subject name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "Subject already exists.")
	}
	return nil
}
