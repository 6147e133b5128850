package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Active reports whether the status still occupies its slot.
func (s AppointmentStatus) Active() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

type Appointment struct {
	Base
	ProfessionalID uuid.UUID         `db:"professional_id" json:"professional_id"`
	ClientID       uuid.UUID         `db:"client_id" json:"client_id"`
	ServiceID      uuid.UUID         `db:"service_id" json:"service_id"`
	StartTime      time.Time         `db:"start_time" json:"start_time"`
	EndTime        time.Time         `db:"end_time" json:"end_time"`
	Status         AppointmentStatus `db:"status" json:"status"`
	CancelReason   *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// Slot is a candidate booking start time for one date. Derived and
// ephemeral: recomputed on every availability request, never persisted.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type BookSlotRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	Date           string    `json:"date" binding:"required,isodate"`
	Time           string    `json:"time" binding:"required,clock"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
