package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "Pending"
	StatusScheduled   AppointmentStatus = "Scheduled"
	StatusCompleted   AppointmentStatus = "Completed"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusRescheduled AppointmentStatus = "Rescheduled"
	StatusConfirmed   AppointmentStatus = "Confirmed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Appointment links exactly one doctor and one patient. Status and
// PaymentStatus evolve independently; no transition matrix is enforced on
// Status, any enumerated value may follow any other.
type Appointment struct {
	gorm.Model
	DoctorID        uint              `json:"doctor_id" gorm:"index;not null"`
	Doctor          User              `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID       uint              `json:"patient_id" gorm:"index;not null"`
	Patient         User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DateTime        time.Time         `json:"date_time"`
	Issues          string            `json:"issues"`
	Notes           string            `json:"notes"`
	Status          AppointmentStatus `json:"status"`
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	PaymentIntentID string            `json:"payment_intent_id"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	return nil
}

// IsValidStatus reports whether s is one of the enumerated statuses.
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled, StatusConfirmed:
		return true
	}
	return false
}
