package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
)

// HomeView is the monthly timetable of one teacher grouped by day.
type HomeView struct {
	Teachers []models.Teacher
	Selected *models.Teacher
	Month    time.Time
	Days     []aggregate.DayGroup
}

// TimetableService builds the read-only timetable views.
type TimetableService struct {
	sessions sessionRepository
	teachers teacherRepository
	clock    Clock
	logger   *zap.Logger
}

// NewTimetableService constructs the service.
func NewTimetableService(sessions sessionRepository, teachers teacherRepository, clock Clock, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{sessions: sessions, teachers: teachers, clock: clock, logger: logger}
}

// Home lists the selected teacher's sessions in the current month. An unknown or empty teacherID
// yields no selection.
func (s *TimetableService) Home(ctx context.Context, teacherID string) (*HomeView, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list teachers")
	}
	view := &HomeView{Teachers: teachers, Month: s.clock.Today()}

	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" {
		return view, nil
	}
	for i := range teachers {
		if teachers[i].ID == teacherID {
			view.Selected = &teachers[i]
			break
		}
	}
	if view.Selected == nil {
		return view, nil
	}

	sessions, err := s.sessions.ListByTeacherInRange(ctx, teacherID, s.clock.Month())
	if err != nil {
		return nil, internalError(err, "failed to list sessions")
	}
	view.Days = aggregate.GroupByDate(sessions)
	return view, nil
}

// Weekly builds the combined and per-teacher grids for the current week.
func (s *TimetableService) Weekly(ctx context.Context) (aggregate.WeeklyGrid, []models.SessionView, error) {
	today := s.clock.Today()
	sessions, err := s.sessions.ListInRange(ctx, models.WeekRange(today))
	if err != nil {
		return aggregate.WeeklyGrid{}, nil, internalError(err, "failed to list weekly sessions")
	}
	return aggregate.BuildWeeklyGrid(models.WeekStart(today), sessions), sessions, nil
}

// MonthSessions returns every session of the current month.
func (s *TimetableService) MonthSessions(ctx context.Context) ([]models.SessionView, error) {
	sessions, err := s.sessions.ListInRange(ctx, s.clock.Month())
	if err != nil {
		return nil, internalError(err, "failed to list sessions")
	}
	return sessions, nil
}
