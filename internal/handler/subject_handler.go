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

type subjectService interface {
	List(ctx context.Context) ([]models.Subject, error)
	Get(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, req service.SubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, id string, req service.SubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string) ([]models.Lookup, error)
}

// SubjectHandler serves subject management.
type SubjectHandler struct {
	pages
	subjects subjectService
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(subjects subjectService, f flasher, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{pages: newPages(f, logger), subjects: subjects}
}

func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context())
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "subjects.html", "Subjects", "subjects", gin.H{"Subjects": subjects})
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.SubjectRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/subjects")
		return
	}
	if _, err := h.subjects.Create(c.Request.Context(), req); err != nil {
		h.fail(c, err, "/subjects")
		return
	}
	h.done(c, "Subject added.", "/subjects")
}

func (h *SubjectHandler) Edit(c *gin.Context) {
	subject, err := h.subjects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	h.render(c, "subject_edit.html", "Edit Subject", "subjects", gin.H{"Subject": subject})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/subjects/" + id + "/edit"
	var req service.SubjectRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if _, err := h.subjects.Update(c.Request.Context(), id, req); err != nil {
		h.fail(c, err, back)
		return
	}
	h.done(c, "Subject updated.", "/subjects")
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/subjects")
		return
	}
	h.done(c, "Subject deleted.", "/subjects")
}

// Search godoc
// @Summary Search subjects by name
// @Tags Search
// @Produce json
// @Param q query string false "Case-insensitive name fragment"
// @Success 200 {array} models.Lookup
// @Router /search_subjects [get]
func (h *SubjectHandler) Search(c *gin.Context) {
	items, err := h.subjects.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, items)
}
