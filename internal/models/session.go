package models

import "time"

// Storage layouts for calendar dates and wall-clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ClassSession is one scheduled slot linking a teacher, a student and a subject.
type ClassSession struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SessionDate string    `db:"session_date" json:"session_date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SessionView is a session with teacher, student and subject names already joined.
type SessionView struct {
	ClassSession
	TeacherName     string  `db:"teacher_name" json:"teacher_name"`
	TeacherNickname *string `db:"teacher_nickname" json:"teacher_nickname,omitempty"`
	StudentName     string  `db:"student_name" json:"student_name"`
	SubjectName     string  `db:"subject_name" json:"subject_name"`
}

// TeacherLabel returns the teacher nickname or name.
func (s SessionView) TeacherLabel() string {
	return TeacherLabel(s.TeacherName, s.TeacherNickname)
}

// Date parses the stored session date.
func (s ClassSession) Date() (time.Time, error) {
	return time.Parse(DateLayout, s.SessionDate)
}

// NotesText returns the notes or an empty string.
func (s ClassSession) NotesText() string {
	if s.Notes == nil {
		return ""
	}
	return *s.Notes
}

// DateRange is a half-open [From, To) window of ISO dates.
type DateRange struct {
	From string
	To   string
}

// MonthRange returns the calendar month containing t.
func MonthRange(t time.Time) DateRange {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateRange{From: first.Format(DateLayout), To: first.AddDate(0, 1, 0).Format(DateLayout)}
}

// WeekStart returns Monday 00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekRange returns Monday through the following Monday (exclusive) for the week containing t.
func WeekRange(t time.Time) DateRange {
	start := WeekStart(t)
	return DateRange{From: start.Format(DateLayout), To: start.AddDate(0, 0, 7).Format(DateLayout)}
}
