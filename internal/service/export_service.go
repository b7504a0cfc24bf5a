package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
	appErrors "github.com/noah-isme/el-timetable/pkg/errors"
	"github.com/noah-isme/el-timetable/pkg/export"
)

type weeklySource interface {
	Weekly(ctx context.Context) (aggregate.WeeklyGrid, []models.SessionView, error)
}

type totalsSource interface {
	Month() time.Time
	StudentDues(ctx context.Context) ([]aggregate.StudentDue, error)
	TeacherTotals(ctx context.Context, metric aggregate.Metric) ([]aggregate.TeacherTotal, error)
}

type studentSource interface {
	List(ctx context.Context) ([]models.StudentDetail, error)
}

type paymentSource interface {
	List(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error)
}

type attendanceSource interface {
	List(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error)
}

type datasetRenderer interface {
	Render(format string, data export.Dataset) ([]byte, error)
}

type exportRecorder interface {
	RecordExport(kind, format string)
}

// ExportSources groups the read models each export is built from.
type ExportSources struct {
	Weekly     weeklySource
	Totals     totalsSource
	Students   studentSource
	Payments   paymentSource
	Attendance attendanceSource
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService maps aggregations and record sets into flat tables and renders them.
type ExportService struct {
	src      ExportSources
	renderer datasetRenderer
	metrics  exportRecorder
	clock    Clock
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. A nil renderer uses the csv/excel/pdf registry.
func NewExportService(src ExportSources, renderer datasetRenderer, metrics exportRecorder, clock Clock, logger *zap.Logger) *ExportService {
	if renderer == nil {
		renderer = export.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{src: src, renderer: renderer, metrics: metrics, clock: clock, logger: logger}
}

// Weekly exports this week's sessions.
func (s *ExportService) Weekly(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	grid, sessions, err := s.src.Weekly.Weekly(ctx)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   fmt.Sprintf("Weekly Timetable %s - %s", grid.Start.Format("02 Jan"), grid.End.Format("02 Jan 2006")),
		Headers: []string{"Date", "Day", "Start", "End", "Teacher", "Nickname", "Student", "Subject", "Notes"},
	}
	for _, sv := range sessions {
		day := ""
		if d, err := sv.Date(); err == nil {
			day = d.Weekday().String()
		}
		data.Rows = append(data.Rows, map[string]string{
			"Date":     sv.SessionDate,
			"Day":      day,
			"Start":    sv.StartTime,
			"End":      sv.EndTime,
			"Teacher":  sv.TeacherName,
			"Nickname": optionalText(sv.TeacherNickname),
			"Student":  sv.StudentName,
			"Subject":  sv.SubjectName,
			"Notes":    sv.NotesText(),
		})
	}
	return s.render(models.ExportWeekly, format, "weekly_"+grid.Start.Format("2006_01_02"), data)
}

// Payments exports this month's dues per student.
func (s *ExportService) Payments(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	dues, err := s.src.Totals.StudentDues(ctx)
	if err != nil {
		return nil, err
	}
	month := s.src.Totals.Month()
	data := export.Dataset{
		Title:   "Student Payments " + month.Format("January 2006"),
		Headers: []string{"Student", "Rate per Class", "Classes", "Total Payment"},
	}
	for _, d := range dues {
		data.Rows = append(data.Rows, map[string]string{
			"Student":        d.StudentName,
			"Rate per Class": money(d.RatePerClass),
			"Classes":        strconv.Itoa(d.Classes),
			"Total Payment":  money(d.Total),
		})
	}
	return s.render(models.ExportPaymentsDue, format, "payments_"+month.Format("2006_01"), data)
}

// Totals exports this month's per-teacher totals using metric for the per-subject column.
func (s *ExportService) Totals(ctx context.Context, rawFormat string, metric aggregate.Metric) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	totals, err := s.src.Totals.TeacherTotals(ctx, metric)
	if err != nil {
		return nil, err
	}
	month := s.src.Totals.Month()
	column := metric.Title()
	data := export.Dataset{
		Title:   "Teacher Totals " + month.Format("January 2006"),
		Headers: []string{"Teacher", "Nickname", "Total Sessions", column},
	}
	for _, t := range totals {
		data.Rows = append(data.Rows, map[string]string{
			"Teacher":        t.Name,
			"Nickname":       t.Nickname,
			"Total Sessions": strconv.Itoa(t.Sessions),
			column:           t.Summary(),
		})
	}
	return s.render(models.ExportTeacherTotals, format, "totals_"+month.Format("2006_01"), data)
}

// Students exports the student roster.
func (s *ExportService) Students(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	students, err := s.src.Students.List(ctx)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Students",
		Headers: []string{"Name", "Rate per Class", "Email", "Phone", "Parent", "Address", "Subjects"},
	}
	for _, st := range students {
		names := make([]string, 0, len(st.Subjects))
		for _, sub := range st.Subjects {
			names = append(names, sub.Name)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Name":           st.Name,
			"Rate per Class": money(st.RatePerClass),
			"Email":          optionalText(st.Email),
			"Phone":          optionalText(st.Phone),
			"Parent":         optionalText(st.ParentName),
			"Address":        optionalText(st.Address),
			"Subjects":       strings.Join(names, ", "),
		})
	}
	return s.render(models.ExportStudents, format, "students_"+s.clock.Today().Format("2006_01_02"), data)
}

// PaymentRecords exports recorded payments between from and to, inclusive.
func (s *ExportService) PaymentRecords(ctx context.Context, rawFormat, from, to string) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	rng, first, last, err := s.clock.Range(from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.src.Payments.List(ctx, rng)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   fmt.Sprintf("Payments %s to %s", first.Format(models.DateLayout), last.Format(models.DateLayout)),
		Headers: []string{"Date", "Student", "Subject", "Amount", "Method"},
	}
	for _, p := range payments {
		data.Rows = append(data.Rows, map[string]string{
			"Date":    p.PaymentDate,
			"Student": p.StudentName,
			"Subject": p.SubjectName,
			"Amount":  money(p.Amount),
			"Method":  p.Method,
		})
	}
	name := fmt.Sprintf("payment_records_%s_%s", first.Format("2006_01_02"), last.Format("2006_01_02"))
	return s.render(models.ExportPaymentRecords, format, name, data)
}

// Attendance exports attendance for sessions between from and to, inclusive.
func (s *ExportService) Attendance(ctx context.Context, rawFormat, from, to string) (*ExportFile, error) {
	format, err := parseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	rng, first, _, err := s.clock.Range(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.src.Attendance.List(ctx, rng)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Attendance " + first.Format("January 2006"),
		Headers: []string{"Date", "Start", "Teacher", "Student", "Subject", "Status", "Recorded At"},
	}
	for _, a := range records {
		data.Rows = append(data.Rows, map[string]string{
			"Date":        a.SessionDate,
			"Start":       a.StartTime,
			"Teacher":     a.TeacherName,
			"Student":     a.StudentName,
			"Subject":     a.SubjectName,
			"Status":      string(a.Status),
			"Recorded At": a.RecordedAt.In(s.clock.Today().Location()).Format("2006-01-02 15:04"),
		})
	}
	return s.render(models.ExportAttendance, format, "attendance_"+first.Format("2006_01"), data)
}

func (s *ExportService) render(kind models.ExportKind, format models.ExportFormat, basename string, data export.Dataset) (*ExportFile, error) {
	payload, err := s.renderer.Render(string(format), data)
	if err != nil {
		s.logger.Error("failed to render export", zap.String("kind", string(kind)), zap.String("format", string(format)), zap.Error(err))
		return nil, internalError(err, "failed to render export")
	}
	if s.metrics != nil {
		s.metrics.RecordExport(string(kind), string(format))
	}
	return &ExportFile{
		Filename:    basename + "." + format.Extension(),
		ContentType: format.ContentType(),
		Data:        payload,
	}, nil
}

func parseFormat(raw string) (models.ExportFormat, error) {
	format, ok := models.ParseExportFormat(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrInvalidFormat, "")
	}
	return format, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
