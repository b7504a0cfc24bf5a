package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceArrived  AttendanceStatus = "Arrived"
	AttendanceLate     AttendanceStatus = "Late"
	AttendanceAbsent   AttendanceStatus = "Absent"
	AttendanceVacation AttendanceStatus = "Vacation"
)

// AttendanceStatuses lists the allowed statuses in display order.
func AttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{AttendanceArrived, AttendanceLate, AttendanceAbsent, AttendanceVacation}
}

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceArrived, AttendanceLate, AttendanceAbsent, AttendanceVacation:
		return true
	default:
		return false
	}
}

// Attendance records how a student showed up to a session.
type Attendance struct {
	ID         string           `db:"id" json:"id"`
	SessionID  string           `db:"session_id" json:"session_id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	Status     AttendanceStatus `db:"status" json:"status"`
	RecordedAt time.Time        `db:"recorded_at" json:"recorded_at"`
}

// AttendanceView joins the session context onto an attendance row.
type AttendanceView struct {
	Attendance
	SessionDate string `db:"session_date" json:"session_date"`
	StartTime   string `db:"start_time" json:"start_time"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	StudentName string `db:"student_name" json:"student_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
}
