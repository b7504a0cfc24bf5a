package aggregate

import (
	"math"

	"github.com/noah-isme/el-timetable/internal/models"
)

// LedgerRow is the balance of one student/subject membership.
type LedgerRow struct {
	StudentID   string
	StudentName string
	SubjectID   string
	SubjectName string
	Price       float64
	Paid        float64
	Outstanding float64
}

// Ledger sums payments per membership. Outstanding is the subject price minus payments, floored at zero.
func Ledger(enrollments []models.Enrollment, paid map[models.MembershipKey]float64) []LedgerRow {
	rows := make([]LedgerRow, 0, len(enrollments))
	for _, e := range enrollments {
		sum := paid[e.Key()]
		rows = append(rows, LedgerRow{
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			SubjectID:   e.SubjectID,
			SubjectName: e.SubjectName,
			Price:       e.Price,
			Paid:        sum,
			Outstanding: math.Max(e.Price-sum, 0),
		})
	}
	return rows
}
