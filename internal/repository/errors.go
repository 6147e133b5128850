package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSlot is returned when an insert loses the race for a
	// (professional, start_time) pair to a concurrent booking. Backed by
	// the partial unique index on appointments.
	ErrDuplicateSlot = errors.New("slot already booked")
)
