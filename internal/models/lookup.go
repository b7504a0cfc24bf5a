package models

// Lookup is an id/name pair returned to autocomplete widgets.
type Lookup struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
