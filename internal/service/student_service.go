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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student, subjectIDs []string) error
	Update(ctx context.Context, student *models.Student, subjectIDs []string) error
	Delete(ctx context.Context, id string) error
	SubjectIDs(ctx context.Context, studentID string) ([]string, error)
	ListEnrollments(ctx context.Context) ([]models.Enrollment, error)
	Search(ctx context.Context, term string, limit int) ([]models.Lookup, error)
}

// StudentRequest is the create/edit form for students.
type StudentRequest struct {
	Name         string   `form:"name" json:"name" validate:"required,max=120"`
	RatePerClass float64  `form:"rate_per_class" json:"rate_per_class" validate:"finite,gte=0"`
	Email        *string  `form:"email" json:"email" validate:"omitempty,email,max=120"`
	Phone        *string  `form:"phone" json:"phone" validate:"omitempty,max=50"`
	ParentName   *string  `form:"parent_name" json:"parent_name" validate:"omitempty,max=120"`
	Address      *string  `form:"address" json:"address" validate:"omitempty,max=255"`
	SubjectIDs   []string `form:"subject_ids" json:"subject_ids"`
}

var studentMessages = map[string]string{
	"Name.required":       "Student name cannot be empty.",
	"Name.max":            "Student name is too long.",
	"RatePerClass.finite": "Rate per class must be a number.",
	"RatePerClass":        "Rate per class must be zero or more.",
	"Email":               "Email address is not valid.",
	"Phone":               "Phone number is too long.",
	"ParentName":          "Parent name is too long.",
	"Address":             "Address is too long.",
}

// StudentService handles student business logic.
type StudentService struct {
	repo        studentRepository
	subjects    subjectRepository
	audit       auditor
	searchLimit int
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(repo studentRepository, subjects subjectRepository, audit auditor, searchLimit int, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if searchLimit <= 0 {
		searchLimit = 20
	}
	return &StudentService{repo: repo, subjects: subjects, audit: audit, searchLimit: searchLimit, validator: validate, logger: logger}
}

// List returns every student with the subjects they are enrolled in.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	bySubject, err := s.subjects.ListByStudent(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list student subjects")
	}
	details := make([]models.StudentDetail, 0, len(students))
	for _, st := range students {
		subjects := bySubject[st.ID]
		if subjects == nil {
			subjects = []models.Subject{}
		}
		details = append(details, models.StudentDetail{Student: st, Subjects: subjects})
	}
	return details, nil
}

// Get fetches a student with its subject ids.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, []string, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ids, err := s.repo.SubjectIDs(ctx, id)
	if err != nil {
		return nil, nil, internalError(err, "failed to load student subjects")
	}
	return student, ids, nil
}

// Create adds a student and its memberships.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	req, err := s.prepare(ctx, req, "")
	if err != nil {
		return nil, err
	}

	student := &models.Student{}
	applyStudent(student, req)
	if err := s.repo.Create(ctx, student, req.SubjectIDs); err != nil {
		return nil, internalError(err, "failed to create student")
	}
	s.audit.Record(ctx, models.ActionAddStudent, fmt.Sprintf("Added student %s with rate %.2f, subjects=%s", student.Name, student.RatePerClass, strings.Join(req.SubjectIDs, ",")))
	return student, nil
}

// Update modifies a student and replaces its memberships.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	req, err = s.prepare(ctx, req, id)
	if err != nil {
		return nil, err
	}

	applyStudent(student, req)
	if err := s.repo.Update(ctx, student, req.SubjectIDs); err != nil {
		return nil, internalError(err, "failed to update student")
	}
	s.audit.Record(ctx, models.ActionEditStudent, fmt.Sprintf("Updated student %s to %s with rate %.2f, subjects=%s", id, student.Name, student.RatePerClass, strings.Join(req.SubjectIDs, ",")))
	return student, nil
}

// Delete removes a student with everything that references it.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	student, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalError(err, "failed to delete student")
	}
	s.audit.Record(ctx, models.ActionDeleteStudent, fmt.Sprintf("Deleted student %s", student.Name))
	return nil
}

// Search returns students whose names contain q.
func (s *StudentService) Search(ctx context.Context, q string) ([]models.Lookup, error) {
	if strings.TrimSpace(q) == "" {
		return []models.Lookup{}, nil
	}
	items, err := s.repo.Search(ctx, q, s.searchLimit)
	if err != nil {
		return nil, internalError(err, "failed to search students")
	}
	return items, nil
}

func (s *StudentService) find(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, internalError(err, "failed to load student")
	}
	return student, nil
}

func (s *StudentService) prepare(ctx context.Context, req StudentRequest, excludeID string) (StudentRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeOptional(req.Email)
	req.Phone = normalizeOptional(req.Phone)
	req.ParentName = normalizeOptional(req.ParentName)
	req.Address = normalizeOptional(req.Address)
	req.SubjectIDs = uniqueIDs(req.SubjectIDs)
	req.RatePerClass = cents(req.RatePerClass)

	if err := s.validator.Struct(req); err != nil {
		return req, validationError(err, studentMessages, "invalid student payload")
	}
	exists, err := s.repo.ExistsByName(ctx, req.Name, excludeID)
	if err != nil {
		return req, internalError(err, "failed to check student name")
	}
	if exists {
		return req, appErrors.Clone(appErrors.ErrConflict, "Student already exists.")
	}
	for _, subjectID := range req.SubjectIDs {
		if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return req, appErrors.Validation("Selected subject does not exist.")
			}
			return req, internalError(err, "failed to load subject")
		}
	}
	return req, nil
}

func applyStudent(student *models.Student, req StudentRequest) {
	student.Name = req.Name
	student.RatePerClass = req.RatePerClass
	student.Email = req.Email
	student.Phone = req.Phone
	student.ParentName = req.ParentName
	student.Address = req.Address
}
