package models

import (
	"strings"
	"time"
)

// Teacher represents an instructor record.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Nickname  *string   `db:"nickname" json:"nickname,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Label is the short name shown on timetables: the nickname when set, otherwise the full name.
func (t Teacher) Label() string {
	return TeacherLabel(t.Name, t.Nickname)
}

// TeacherLabel resolves the display label from a name and an optional nickname.
func TeacherLabel(name string, nickname *string) string {
	if nickname != nil && strings.TrimSpace(*nickname) != "" {
		return *nickname
	}
	return name
}
