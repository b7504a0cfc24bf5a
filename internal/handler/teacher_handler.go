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

type teacherService interface {
	List(ctx context.Context) ([]models.Teacher, error)
	Get(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, req service.TeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id string, req service.TeacherRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]models.Lookup, error)
}

// TeacherHandler wires teacher services to HTTP routes.
type TeacherHandler struct {
	pages
	teachers teacherService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers teacherService, f flasher, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{pages: newPages(f, logger), teachers: teachers}
}

// List renders the teacher roster with the add form.
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.teachers.List(c.Request.Context())
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "teachers.html", "Teachers", "teachers", gin.H{"Teachers": teachers})
}

// Create adds a teacher from the roster form.
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.TeacherRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/teachers")
		return
	}
	if _, err := h.teachers.Create(c.Request.Context(), req); err != nil {
		h.fail(c, err, "/teachers")
		return
	}
	h.done(c, "Teacher added.", "/teachers")
}

// Edit renders the edit form.
func (h *TeacherHandler) Edit(c *gin.Context) {
	teacher, err := h.teachers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "teacher_edit.html", "Edit Teacher", "teachers", gin.H{"Teacher": teacher})
}

// Update saves the edit form.
func (h *TeacherHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/teachers/" + id + "/edit"
	var req service.TeacherRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if _, err := h.teachers.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err, back)
		return
	}
	h.done(c, "Teacher updated.", "/teachers")
}

// Delete removes a teacher together with its sessions.
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teachers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/teachers")
		return
	}
	h.done(c, "Teacher deleted.", "/teachers")
}

// Search godoc
// @Summary Search teachers by name
// @Tags Search
// @Produce json
// @Param q query string false "Case-insensitive name fragment"
// @Success 200 {array} models.Lookup
// @Router /search_teachers [get]
func (h *TeacherHandler) Search(c *gin.Context) {
	items, err := h.teachers.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, items)
}
