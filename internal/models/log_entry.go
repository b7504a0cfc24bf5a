package models

import "time"

// Audit actions written to the log.
const (
	ActionAddTeacher       = "add_teacher"
	ActionEditTeacher      = "edit_teacher"
	ActionDeleteTeacher    = "delete_teacher"
	ActionAddStudent       = "add_student"
	ActionEditStudent      = "edit_student"
	ActionDeleteStudent    = "delete_student"
	ActionAddSubject       = "add_subject"
	ActionEditSubject      = "edit_subject"
	ActionDeleteSubject    = "delete_subject"
	ActionAddSession       = "add_session"
	ActionEditSession      = "edit_session"
	ActionDeleteSession    = "delete_session"
	ActionAddPayment       = "add_payment"
	ActionDeletePayment    = "delete_payment"
	ActionAddAttendance    = "add_attendance"
	ActionEditAttendance   = "edit_attendance"
	ActionDeleteAttendance = "delete_attendance"
)

// LogEntry is an immutable audit trail record.
type LogEntry struct {
	ID        string    `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
