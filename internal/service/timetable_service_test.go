package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/models"
)

func timetableSessions() *fakeSessionRepo {
	return newFakeSessionRepo(
		sessionView("a", "t1", "Alice", "s1", "Ana", "Math", "2026-10-12", "09:00", "10:00"),
		sessionView("b", "t1", "Alice", "s2", "Ben", "Art", "2026-10-12", "11:00", "12:00"),
		sessionView("c", "t2", "Bob", "s1", "Ana", "Math", "2026-10-14", "09:00", "10:00"),
		sessionView("d", "t1", "Alice", "s1", "Ana", "Math", "2026-10-30", "15:00", "16:00"),
		sessionView("e", "t1", "Alice", "s1", "Ana", "Math", "2026-09-30", "15:00", "16:00"),
	)
}

func TestTimetableServiceHomeGroupsSelectedTeacher(t *testing.T) {
	teachers := newFakeTeacherRepo(models.Teacher{ID: "t1", Name: "Alice"}, models.Teacher{ID: "t2", Name: "Bob"})
	svc := NewTimetableService(timetableSessions(), teachers, fixedClock(), nil)

	view, err := svc.Home(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "Alice", view.Selected.Name)
	assert.Len(t, view.Teachers, 2)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "2026-10-12", view.Days[0].Date)
	assert.Len(t, view.Days[0].Sessions, 2)
	assert.Equal(t, "2026-10-30", view.Days[1].Date)
}

func TestTimetableServiceHomeWithoutSelection(t *testing.T) {
	teachers := newFakeTeacherRepo(models.Teacher{ID: "t1", Name: "Alice"})
	svc := NewTimetableService(timetableSessions(), teachers, fixedClock(), nil)

	for _, id := range []string{"", "unknown"} {
		view, err := svc.Home(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, view.Selected)
		assert.Empty(t, view.Days)
	}
}

func TestTimetableServiceWeekly(t *testing.T) {
	sessions := timetableSessions()
	svc := NewTimetableService(sessions, newFakeTeacherRepo(), fixedClock(), nil)

	grid, list, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DateRange{From: "2026-10-12", To: "2026-10-19"}, sessions.lastFrom)
	assert.Len(t, list, 3)
	assert.Equal(t, time.Monday, grid.Start.Weekday())
	assert.Len(t, grid.Teachers, 2)
	assert.False(t, grid.Empty())
}

func TestTimetableServiceMonthSessions(t *testing.T) {
	svc := NewTimetableService(timetableSessions(), newFakeTeacherRepo(), fixedClock(), nil)

	sessions, err := svc.MonthSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 4)
}
