package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DateFormat is the wire format for calendar dates, matching the keys of
// the special-date schedule map.
const DateFormat = "2006-01-02"

// ClockFormat is the wire format for slot start times.
const ClockFormat = "15:04"
