package service

import (
	"context"
	"time"

	"github.com/noah-isme/el-timetable/internal/aggregate"
	"github.com/noah-isme/el-timetable/internal/models"
)

// TotalsService computes the monthly aggregations for students and teachers.
type TotalsService struct {
	sessions sessionRepository
	students studentRepository
	teachers teacherRepository
	clock    Clock
}

// NewTotalsService constructs the service.
func NewTotalsService(sessions sessionRepository, students studentRepository, teachers teacherRepository, clock Clock) *TotalsService {
	return &TotalsService{sessions: sessions, students: students, teachers: teachers, clock: clock}
}

// Month returns the instant the current month is computed from.
func (s *TotalsService) Month() time.Time {
	return s.clock.Today()
}

// StudentDues returns classes times rate for every student in the current month.
func (s *TotalsService) StudentDues(ctx context.Context) ([]aggregate.StudentDue, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	sessions, err := s.monthSessions(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.StudentDues(students, sessions), nil
}

// TeacherTotals returns per-teacher session counts for the current month.
func (s *TotalsService) TeacherTotals(ctx context.Context, metric aggregate.Metric) ([]aggregate.TeacherTotal, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list teachers")
	}
	sessions, err := s.monthSessions(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.TeacherTotals(teachers, sessions, metric), nil
}

func (s *TotalsService) monthSessions(ctx context.Context) ([]models.SessionView, error) {
	sessions, err := s.sessions.ListInRange(ctx, s.clock.Month())
	if err != nil {
		return nil, internalError(err, "failed to list sessions")
	}
	return sessions, nil
}
