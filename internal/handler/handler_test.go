package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/service"
	"github.com/noah-isme/el-timetable/pkg/flash"
	"github.com/noah-isme/el-timetable/web"
)

type fakeFlasher struct {
	added   []flash.Message
	pending []flash.Message
}

func (f *fakeFlasher) Add(c *gin.Context, kind flash.Kind, text string) {
	f.added = append(f.added, flash.Message{Kind: kind, Text: text})
}

func (f *fakeFlasher) Pop(c *gin.Context) []flash.Message {
	out := f.pending
	f.pending = nil
	return out
}

func (f *fakeFlasher) last() flash.Message {
	if len(f.added) == 0 {
		return flash.Message{}
	}
	return f.added[len(f.added)-1]
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	return r
}

func testClock() service.Clock {
	return service.Clock{
		Now:      func() time.Time { return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func doPost(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(rec, req)
	return rec
}
