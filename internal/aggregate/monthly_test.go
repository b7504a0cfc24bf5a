package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/models"
)

func TestStudentDues(t *testing.T) {
	students := []models.Student{
		{ID: "id-Ana", Name: "Ana", RatePerClass: 25},
		{ID: "id-Ben", Name: "Ben", RatePerClass: 30},
	}
	sessions := []models.SessionView{
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-01", "10:00"),
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-08", "10:00"),
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-15", "10:00"),
	}

	dues := StudentDues(students, sessions)
	require.Len(t, dues, 2)
	assert.Equal(t, 3, dues[0].Classes)
	assert.Equal(t, 75.0, dues[0].Total)
	assert.Equal(t, 0, dues[1].Classes)
	assert.Zero(t, dues[1].Total)
}

func TestTeacherTotalsMetrics(t *testing.T) {
	teachers := []models.Teacher{
		{ID: "t1", Name: "Alice", Nickname: strPtr("Ms. A")},
		{ID: "t2", Name: "Bob"},
	}
	sessions := []models.SessionView{
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-01", "10:00"),
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-02", "10:00"),
		view("t1", "Alice", nil, "Ben", "Art", "2026-10-03", "10:00"),
		view("t1", "Alice", nil, "Cid", "Math", "2026-10-04", "10:00"),
	}

	students := TeacherTotals(teachers, sessions, MetricStudents)
	require.Len(t, students, 2)
	assert.Equal(t, 4, students[0].Sessions)
	assert.Equal(t, "Ms. A", students[0].Nickname)
	assert.Equal(t, []SubjectCount{{Subject: "Math", Count: 2}, {Subject: "Art", Count: 1}}, students[0].PerSubject)
	assert.Equal(t, "Math: 2; Art: 1", students[0].Summary())
	assert.Equal(t, 0, students[1].Sessions)
	assert.Empty(t, students[1].PerSubject)

	perSession := TeacherTotals(teachers, sessions, MetricSessions)
	assert.Equal(t, []SubjectCount{{Subject: "Math", Count: 3}, {Subject: "Art", Count: 1}}, perSession[0].PerSubject)
}

func TestParseMetric(t *testing.T) {
	assert.Equal(t, MetricSessions, ParseMetric("Sessions"))
	assert.Equal(t, MetricStudents, ParseMetric(""))
	assert.Equal(t, MetricStudents, ParseMetric("bogus"))
	assert.Equal(t, "Students per Subject", MetricStudents.Title())
}

func TestGroupByDate(t *testing.T) {
	sessions := []models.SessionView{
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-01", "09:00"),
		view("t1", "Alice", nil, "Ben", "Math", "2026-10-01", "11:00"),
		view("t1", "Alice", nil, "Ana", "Math", "2026-10-03", "09:00"),
	}
	groups := GroupByDate(sessions)
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-10-01", groups[0].Date)
	assert.Len(t, groups[0].Sessions, 2)
	assert.Equal(t, "2026-10-03", groups[1].Date)
	assert.Empty(t, GroupByDate(nil))
}
