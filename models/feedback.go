package models

import (
	"gorm.io/gorm"
)

// Feedback is a patient rating on a doctor tied to the originating
// appointment. Immutable after creation except for the moderation flag.
type Feedback struct {
	gorm.Model
	DoctorID      uint    `json:"doctor_id" gorm:"index"`
	Doctor        User    `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	PatientID     uint    `json:"patient_id" gorm:"index"`
	Patient       User    `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	AppointmentID uint    `json:"appointment_id"`
	Rating        float64 `json:"rating" gorm:"type:decimal(2,1);not null"`
	Comment       string  `json:"comment"`
	IsModerated   bool    `json:"is_moderated" gorm:"default:false"`
}

// BeforeCreate clamps the rating into the allowed 1..5 range.
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.Rating < 1.0 {
		f.Rating = 1.0
	} else if f.Rating > 5.0 {
		f.Rating = 5.0
	}
	return nil
}
