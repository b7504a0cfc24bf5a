package models

import "time"

// Subject is a course package sold to students.
type Subject struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Price           float64   `db:"price" json:"price"`
	NumberOfClasses int       `db:"number_of_classes" json:"number_of_classes"`
	DiscountPercent float64   `db:"discount_percent" json:"discount_percent"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Enrollment is one row of the student/subject membership with names and price resolved.
type Enrollment struct {
	StudentID   string  `db:"student_id" json:"student_id"`
	StudentName string  `db:"student_name" json:"student_name"`
	SubjectID   string  `db:"subject_id" json:"subject_id"`
	SubjectName string  `db:"subject_name" json:"subject_name"`
	Price       float64 `db:"price" json:"price"`
}

// MembershipKey identifies a student/subject pair.
type MembershipKey struct {
	StudentID string
	SubjectID string
}

// Key returns the membership key of the enrollment.
func (e Enrollment) Key() MembershipKey {
	return MembershipKey{StudentID: e.StudentID, SubjectID: e.SubjectID}
}
