// Package app wires repositories, services and handlers into a ready-to-serve engine.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/handler"
	"github.com/noah-isme/el-timetable/internal/repository"
	"github.com/noah-isme/el-timetable/internal/router"
	"github.com/noah-isme/el-timetable/internal/service"
	"github.com/noah-isme/el-timetable/pkg/config"
	"github.com/noah-isme/el-timetable/pkg/export"
	"github.com/noah-isme/el-timetable/pkg/flash"
)

// New builds the HTTP engine on top of an open, migrated database.
func New(cfg *config.Config, db *sqlx.DB, logr *zap.Logger) (*gin.Engine, error) {
	if logr == nil {
		logr = zap.NewNop()
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	clock := service.NewClock(cfg.Location)
	validate := service.NewValidator()

	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	logRepo := repository.NewLogRepository(db)

	audit := service.NewAuditService(logRepo, cfg.Views.LogPageSize, metrics, logr)
	teachers := service.NewTeacherService(teacherRepo, audit, cfg.Views.SearchLimit, validate, logr)
	students := service.NewStudentService(studentRepo, subjectRepo, audit, cfg.Views.SearchLimit, validate, logr)
	subjects := service.NewSubjectService(subjectRepo, audit, cfg.Views.SearchLimit, validate, logr)
	sessions := service.NewSessionService(sessionRepo, teacherRepo, studentRepo, subjectRepo, audit, validate, logr)
	payments := service.NewPaymentService(paymentRepo, studentRepo, subjectRepo, audit, clock, validate, logr)
	attendance := service.NewAttendanceService(attendanceRepo, sessionRepo, studentRepo, audit, validate, logr)
	timetable := service.NewTimetableService(sessionRepo, teacherRepo, clock, logr)
	totals := service.NewTotalsService(sessionRepo, studentRepo, teacherRepo, clock)
	exports := service.NewExportService(service.ExportSources{
		Weekly:     timetable,
		Totals:     totals,
		Students:   students,
		Payments:   payments,
		Attendance: attendance,
	}, export.NewRegistry(), metrics, clock, logr)

	flashes := flash.New(cfg.Session.Secret, cfg.Session.CookieName, cfg.Env == config.EnvProduction, logr)

	handlers := router.Handlers{
		Timetable:  handler.NewTimetableHandler(timetable, flashes, logr),
		Teachers:   handler.NewTeacherHandler(teachers, flashes, logr),
		Students:   handler.NewStudentHandler(students, subjects, flashes, logr),
		Subjects:   handler.NewSubjectHandler(subjects, flashes, logr),
		Sessions:   handler.NewSessionHandler(sessions, teachers, students, subjects, clock, flashes, logr),
		Payments:   handler.NewPaymentHandler(payments, totals, students, subjects, flashes, logr),
		Totals:     handler.NewTotalsHandler(totals, flashes, logr),
		Attendance: handler.NewAttendanceHandler(attendance, timetable, students, clock, flashes, logr),
		Logs:       handler.NewLogHandler(audit, flashes, logr),
		Exports:    handler.NewExportHandler(exports, flashes, logr),
		Metrics:    handler.NewMetricsHandler(metrics, db),
	}

	return router.New(cfg, handlers, metrics, logr)
}
