package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/handler"
	"github.com/noah-isme/el-timetable/internal/middleware"
	"github.com/noah-isme/el-timetable/internal/service"
	"github.com/noah-isme/el-timetable/pkg/config"
	"github.com/noah-isme/el-timetable/pkg/logger"
	"github.com/noah-isme/el-timetable/pkg/middleware/requestid"
	"github.com/noah-isme/el-timetable/web"
)

// Handlers bundles every page and endpoint the router mounts.
type Handlers struct {
	Timetable  *handler.TimetableHandler
	Teachers   *handler.TeacherHandler
	Students   *handler.StudentHandler
	Subjects   *handler.SubjectHandler
	Sessions   *handler.SessionHandler
	Payments   *handler.PaymentHandler
	Totals     *handler.TotalsHandler
	Attendance *handler.AttendanceHandler
	Logs       *handler.LogHandler
	Exports    *handler.ExportHandler
	Metrics    *handler.MetricsHandler
}

// quietPaths are polled by orchestrators and scrapers and stay out of request logs and metrics.
var quietPaths = []string{"/health", "/metrics"}

// New builds the gin engine with middleware, templates, static assets and all routes.
func New(cfg *config.Config, h Handlers, metrics *service.MetricsService, logr *zap.Logger) (*gin.Engine, error) {
	if logr == nil {
		logr = zap.NewNop()
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(logr, quietPaths...))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics, quietPaths...))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/health", h.Metrics.Health)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", h.Timetable.Home)
	r.GET("/weekly_timetable", h.Timetable.Weekly)

	teachers := r.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.POST("", h.Teachers.Create)
		teachers.GET("/:id/edit", h.Teachers.Edit)
		teachers.POST("/:id/edit", h.Teachers.Update)
		teachers.GET("/:id/delete", h.Teachers.Delete)
		teachers.POST("/:id/delete", h.Teachers.Delete)
	}

	students := r.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id/edit", h.Students.Edit)
		students.POST("/:id/edit", h.Students.Update)
		students.GET("/:id/delete", h.Students.Delete)
		students.POST("/:id/delete", h.Students.Delete)
	}

	subjects := r.Group("/subjects")
	{
		subjects.GET("", h.Subjects.List)
		subjects.POST("", h.Subjects.Create)
		subjects.GET("/:id/edit", h.Subjects.Edit)
		subjects.POST("/:id/edit", h.Subjects.Update)
		subjects.GET("/:id/delete", h.Subjects.Delete)
		subjects.POST("/:id/delete", h.Subjects.Delete)
	}

	sessions := r.Group("/sessions")
	{
		sessions.GET("/add", h.Sessions.Add)
		sessions.POST("/add", h.Sessions.Create)
		sessions.GET("/:id/edit", h.Sessions.Edit)
		sessions.POST("/:id/edit", h.Sessions.Update)
		sessions.GET("/:id/delete", h.Sessions.Delete)
		sessions.POST("/:id/delete", h.Sessions.Delete)
	}

	payments := r.Group("/payments")
	{
		payments.GET("", h.Payments.Page)
		payments.POST("", h.Payments.Record)
		payments.GET("/:id/delete", h.Payments.Delete)
		payments.POST("/:id/delete", h.Payments.Delete)
	}

	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.Attendance.List)
		attendance.POST("", h.Attendance.Create)
		attendance.GET("/:id/edit", h.Attendance.Edit)
		attendance.POST("/:id/edit", h.Attendance.Update)
		attendance.GET("/:id/delete", h.Attendance.Delete)
		attendance.POST("/:id/delete", h.Attendance.Delete)
	}

	r.GET("/teacher_totals", h.Totals.Page)
	r.GET("/logs", h.Logs.List)

	r.GET("/download_weekly/:format", h.Exports.Weekly)
	r.GET("/download_payments/:format", h.Exports.Payments)
	r.GET("/download_totals/:format", h.Exports.Totals)
	r.GET("/export/students/:format", h.Exports.Students)
	r.GET("/export/payments/:format", h.Exports.PaymentRecords)
	r.GET("/export/attendance/:format", h.Exports.Attendance)

	r.GET("/search_students", h.Students.Search)
	r.GET("/search_teachers", h.Teachers.Search)
	r.GET("/search_subjects", h.Subjects.Search)

	return r, nil
}
