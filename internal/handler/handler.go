package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
	"github.com/noah-isme/el-timetable/pkg/flash"
)

type flasher interface {
	Add(c *gin.Context, kind flash.Kind, text string)
	Pop(c *gin.Context) []flash.Message
}

// pages renders HTML views and turns service errors into flashes or error pages.
type pages struct {
	flash  flasher
	logger *zap.Logger
}

func newPages(f flasher, logger *zap.Logger) pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pages{flash: f, logger: logger}
}

func (p pages) render(c *gin.Context, name, title, active string, data gin.H) {
	p.renderStatus(c, http.StatusOK, name, title, active, data)
}

func (p pages) renderStatus(c *gin.Context, status int, name, title, active string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Active"] = active
	data["Flashes"] = p.flash.Pop(c)
	c.HTML(status, name, data)
}

// done flashes a success notice and redirects to location.
func (p pages) done(c *gin.Context, message, location string) {
	p.flash.Add(c, flash.Success, message)
	c.Redirect(http.StatusFound, location)
}

// fail sends validation and conflict errors back to the form as a flash; anything else renders the
// error page.
func (p pages) fail(c *gin.Context, err error, back string) {
	if appErrors.UserFacing(err) {
		p.flash.Add(c, flash.Error, appErrors.FromError(err).Message)
		c.Redirect(http.StatusFound, back)
		return
	}
	p.errorPage(c, err)
}

func (p pages) errorPage(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		p.logger.Error("request failed", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path), zap.Error(err))
		message = "Something went wrong. Please try again."
	}
	p.renderStatus(c, appErr.Status, "error.html", http.StatusText(appErr.Status), "", gin.H{
		"Status":  appErr.Status,
		"Message": message,
	})
}

// bindForm decodes the submitted form. Decoding only fails on malformed numbers.
func bindForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please enter valid numbers.")
	}
	return nil
}
