package model

// Service is a bookable salon offering (haircut, manicure, ...).
type Service struct {
	Base
	Category    string  `db:"category" json:"category"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Duration    int     `db:"duration" json:"duration"` // in minutes
	Price       float64 `db:"price" json:"price"`
	Featured    bool    `db:"featured" json:"featured"`
}
