package models

import (
	"time"
)

// Publisher represents a news outlet. Articles reference publishers by
// name, not by id; there is no referential constraint.
type Publisher struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Logo      string    `json:"logo,omitempty" db:"logo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
