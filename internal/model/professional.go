package model

// Professional is a salon professional clients book with.
type Professional struct {
	Base
	Name        string   `db:"name" json:"name"`
	Role        string   `db:"role" json:"role"`
	Phone       string   `db:"phone" json:"phone,omitempty"`
	Specialties []string `db:"-" json:"specialties,omitempty"`
	Active      bool     `db:"active" json:"active"`
}
