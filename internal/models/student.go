package models

import "time"

// Student represents a learner billed per attended class.
type Student struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	RatePerClass float64   `db:"rate_per_class" json:"rate_per_class"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	ParentName   *string   `db:"parent_name" json:"parent_name,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail is a student with the subjects they are enrolled in.
type StudentDetail struct {
	Student
	Subjects []Subject `json:"subjects"`
}

// HasSubject reports whether the student is enrolled in the subject.
func (d StudentDetail) HasSubject(subjectID string) bool {
	for _, s := range d.Subjects {
		if s.ID == subjectID {
			return true
		}
	}
	return false
}
