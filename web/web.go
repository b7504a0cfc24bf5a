// Package web embeds the HTML templates and static assets served by the timetable UI.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strconv"
	"time"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page. Pages are addressed by file name, e.g. "teachers.html".
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// Static returns the stylesheet and script tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":     money,
		"hourLabel": aggregate.HourLabel,
		"deref":     deref,
		"contains":  contains,
		"datetime":  datetime,
		"statuses":  models.AttendanceStatuses,
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func datetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
