package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekRange(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)
	r := WeekRange(now)
	assert.Equal(t, "2026-10-12", r.From)
	assert.Equal(t, "2026-10-19", r.To)

	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-12", WeekRange(sunday).From)

	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", WeekRange(monday).From)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-12-01", r.From)
	assert.Equal(t, "2027-01-01", r.To)
}

func TestTeacherLabel(t *testing.T) {
	nick := "Ms. A"
	blank := "  "
	assert.Equal(t, "Ms. A", Teacher{Name: "Alice", Nickname: &nick}.Label())
	assert.Equal(t, "Alice", Teacher{Name: "Alice", Nickname: &blank}.Label())
	assert.Equal(t, "Alice", Teacher{Name: "Alice"}.Label())
}

func TestParseExportFormat(t *testing.T) {
	f, ok := ParseExportFormat("Excel")
	assert.True(t, ok)
	assert.Equal(t, "xlsx", f.Extension())

	_, ok = ParseExportFormat("xml")
	assert.False(t, ok)
}

func TestAttendanceStatusValid(t *testing.T) {
	for _, s := range AttendanceStatuses() {
		assert.True(t, s.Valid())
	}
	assert.False(t, AttendanceStatus("Present").Valid())
}
