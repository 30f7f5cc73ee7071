package models

import (
	"gorm.io/gorm"
)

// Prescription is a staff-authored record for a patient. DoctorName is free
// text, not a doctor reference.
type Prescription struct {
	gorm.Model
	PatientID   uint   `json:"patient_id" gorm:"index;not null"`
	Patient     User   `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorName  string `json:"doctor_name"`
	IllnessType string `json:"illness_type"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
