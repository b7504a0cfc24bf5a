package handler

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/models"
	"github.com/noah-isme/el-timetable/internal/service"
)

type sessionService interface {
	Get(ctx context.Context, id string) (*models.ClassSession, error)
	Create(ctx context.Context, req service.SessionRequest) (*models.ClassSession, error)
	Update(ctx context.Context, id string, req service.SessionRequest) (*models.ClassSession, error)
	Delete(ctx context.Context, id string) (*models.ClassSession, error)
}

type teacherLister interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

type studentLister interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
}

// SessionHandler serves the add/edit session forms.
type SessionHandler struct {
	pages
	sessions sessionService
	teachers teacherLister
	students studentLister
	subjects subjectLister
	clock    service.Clock
}

// NewSessionHandler constructs the handler. clock supplies the default date of new sessions.
func NewSessionHandler(sessions sessionService, teachers teacherLister, students studentLister, subjects subjectLister, clock service.Clock, f flasher, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		pages:    newPages(f, logger),
		sessions: sessions,
		teachers: teachers,
		students: students,
		subjects: subjects,
		clock:    clock,
	}
}

// Add renders an empty session form, preselecting ?teacher_id when given.
func (h *SessionHandler) Add(c *gin.Context) {
	form := service.SessionRequest{
		TeacherID:   c.Query("teacher_id"),
		SessionDate: h.clock.Today().Format(models.DateLayout),
	}
	h.form(c, "Add Session", "/sessions/add", form)
}

// Create schedules a session and returns to that teacher's timetable.
func (h *SessionHandler) Create(c *gin.Context) {
	var req service.SessionRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/sessions/add")
		return
	}
	session, err := h.sessions.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "/sessions/add")
		return
	}
	h.done(c, "Session added.", timetableURL(session.TeacherID))
}

// Edit renders the form filled with the stored session.
func (h *SessionHandler) Edit(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errorPage(c, err)
		return
	}
	form := service.SessionRequest{
		TeacherID:   session.TeacherID,
		StudentID:   session.StudentID,
		SubjectID:   session.SubjectID,
		SessionDate: session.SessionDate,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		Notes:       session.Notes,
	}
	h.form(c, "Edit Session", "/sessions/"+session.ID+"/edit", form)
}

func (h *SessionHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/sessions/" + id + "/edit"
	var req service.SessionRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	session, err := h.sessions.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	h.done(c, "Session updated.", timetableURL(session.TeacherID))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	session, err := h.sessions.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.done(c, "Session deleted.", timetableURL(session.TeacherID))
}

func (h *SessionHandler) form(c *gin.Context, heading, action string, form service.SessionRequest) {
	ctx := c.Request.Context()
	teachers, err := h.teachers.List(ctx)
	if err != nil {
		h.errorPage(c, err)
		return
	}
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
	h.render(c, "session_form.html", heading, "sessions", gin.H{
		"Heading":  heading,
		"Action":   action,
		"Form":     form,
		"Teachers": teachers,
		"Students": students,
		"Subjects": subjects,
	})
}

func timetableURL(teacherID string) string {
	return "/?teacher_id=" + url.QueryEscape(teacherID)
}
