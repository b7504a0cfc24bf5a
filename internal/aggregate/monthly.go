package aggregate

import (
	"fmt"
	"strings"

	"github.com/noah-isme/el-timetable/internal/models"
)

// StudentDue is the monthly bill of one student.
type StudentDue struct {
	StudentID    string
	StudentName  string
	RatePerClass float64
	Classes      int
	Total        float64
}

// StudentDues counts each student's sessions and multiplies by their rate. Students keep input order.
func StudentDues(students []models.Student, sessions []models.SessionView) []StudentDue {
	counts := make(map[string]int, len(students))
	for _, s := range sessions {
		counts[s.StudentID]++
	}
	dues := make([]StudentDue, 0, len(students))
	for _, st := range students {
		n := counts[st.ID]
		dues = append(dues, StudentDue{
			StudentID:    st.ID,
			StudentName:  st.Name,
			RatePerClass: st.RatePerClass,
			Classes:      n,
			Total:        float64(n) * st.RatePerClass,
		})
	}
	return dues
}

// Metric selects what teacher totals count per subject.
type Metric string

const (
	MetricSessions Metric = "sessions"
	MetricStudents Metric = "students"
)

// ParseMetric resolves the query parameter, defaulting to unique students.
func ParseMetric(raw string) Metric {
	if Metric(strings.ToLower(strings.TrimSpace(raw))) == MetricSessions {
		return MetricSessions
	}
	return MetricStudents
}

// Title is the column heading for the metric.
func (m Metric) Title() string {
	if m == MetricSessions {
		return "Sessions per Subject"
	}
	return "Students per Subject"
}

// SubjectCount is one subject bucket of a teacher total.
type SubjectCount struct {
	Subject string
	Count   int
}

// TeacherTotal summarises a teacher's month.
type TeacherTotal struct {
	TeacherID  string
	Name       string
	Nickname   string
	Sessions   int
	PerSubject []SubjectCount
}

// Summary joins the subject buckets as "Math: 2; Art: 1".
func (t TeacherTotal) Summary() string {
	parts := make([]string, 0, len(t.PerSubject))
	for _, c := range t.PerSubject {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Subject, c.Count))
	}
	return strings.Join(parts, "; ")
}

// TeacherTotals counts sessions per teacher and groups them by subject in order of first appearance.
// Teachers with no sessions report zero.
func TeacherTotals(teachers []models.Teacher, sessions []models.SessionView, metric Metric) []TeacherTotal {
	type bucket struct {
		order    []string
		sessions map[string]int
		students map[string]map[string]struct{}
	}
	byTeacher := make(map[string]*bucket)
	totals := make(map[string]int)
	for _, s := range sessions {
		totals[s.TeacherID]++
		b, ok := byTeacher[s.TeacherID]
		if !ok {
			b = &bucket{sessions: make(map[string]int), students: make(map[string]map[string]struct{})}
			byTeacher[s.TeacherID] = b
		}
		if _, seen := b.sessions[s.SubjectName]; !seen {
			b.order = append(b.order, s.SubjectName)
			b.students[s.SubjectName] = make(map[string]struct{})
		}
		b.sessions[s.SubjectName]++
		b.students[s.SubjectName][s.StudentID] = struct{}{}
	}

	out := make([]TeacherTotal, 0, len(teachers))
	for _, t := range teachers {
		total := TeacherTotal{TeacherID: t.ID, Name: t.Name, Sessions: totals[t.ID], PerSubject: []SubjectCount{}}
		if t.Nickname != nil {
			total.Nickname = *t.Nickname
		}
		if b, ok := byTeacher[t.ID]; ok {
			for _, subject := range b.order {
				count := len(b.students[subject])
				if metric == MetricSessions {
					count = b.sessions[subject]
				}
				total.PerSubject = append(total.PerSubject, SubjectCount{Subject: subject, Count: count})
			}
		}
		out = append(out, total)
	}
	return out
}

// DayGroup holds the sessions of one date.
type DayGroup struct {
	Date     string
	Sessions []models.SessionView
}

// GroupByDate splits date-ordered sessions into consecutive per-date groups.
func GroupByDate(sessions []models.SessionView) []DayGroup {
	var groups []DayGroup
	for _, s := range sessions {
		if n := len(groups); n > 0 && groups[n-1].Date == s.SessionDate {
			groups[n-1].Sessions = append(groups[n-1].Sessions, s)
			continue
		}
		groups = append(groups, DayGroup{Date: s.SessionDate, Sessions: []models.SessionView{s}})
	}
	return groups
}
