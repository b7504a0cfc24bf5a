package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
	"github.com/noah-isme/el-timetable/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
	Get(ctx context.Context, id string) (*models.Student, []string, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]models.Lookup, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// StudentHandler serves the student roster and its subject memberships.
type StudentHandler struct {
	pages
	students studentService
	subjects subjectLister
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students studentService, subjects subjectLister, f flasher, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{pages: newPages(f, logger), students: students, subjects: subjects}
}

// List renders students with their subjects and the add form.
func (h *StudentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	students, err := h.students.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	subjects, err := h.subjects.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "students.html", "Students", "students", gin.H{"Students": students, "Subjects": subjects})
}

// Create adds a student.
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/students")
		return
	}
	if _, err := h.students.Create(c.Request.Context(), req); err != nil {
		h.fail(c, err, "/students")
		return
	}
	h.done(c, "Student added.", "/students")
}

// Edit renders the edit form with the current memberships checked.
func (h *StudentHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	student, selected, err := h.students.Get(ctx, c.Param("id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	subjects, err := h.subjects.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "student_edit.html", "Edit Student", "students", gin.H{
		"Student":  student,
		"Selected": selected,
		"Subjects": subjects,
	})
}

// Update saves the edit form and replaces the memberships.
func (h *StudentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/students/" + id + "/edit"
	var req service.StudentRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if _, err := h.students.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err, back)
		return
	}
	h.done(c, "Student updated.", "/students")
}

// Delete removes a student with its sessions, payments and memberships.
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/students")
		return
	}
	h.done(c, "Student deleted.", "/students")
}

// Search godoc
// @Summary Search students by name
// @Tags Search
// @Produce json
// @Param q query string false "Case-insensitive name fragment"
// @Success 200 {array} models.Lookup
// @Router /search_students [get]
func (h *StudentHandler) Search(c *gin.Context) {
	items, err := h.students.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, items)
}
