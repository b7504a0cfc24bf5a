package models

import "time"

// DefaultPaymentMethod is used when a payment is recorded without a method.
const DefaultPaymentMethod = "cash"

// Payment is money received from a student towards a subject.
type Payment struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	Amount      float64   `db:"amount" json:"amount"`
	PaymentDate string    `db:"payment_date" json:"payment_date"`
	Method      string    `db:"method" json:"method"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PaymentView adds student and subject names to a payment.
type PaymentView struct {
	Payment
	StudentName string `db:"student_name" json:"student_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
}
