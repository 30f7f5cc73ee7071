package models

import (
	"time"

	"gorm.io/gorm"
)

// DoctorProfile carries the doctor-specific payload of a user. The rating
// fields are only ever mutated through a single atomic UPDATE so concurrent
// feedback submissions cannot lose an increment.
type DoctorProfile struct {
	gorm.Model
	UserID                 uint    `json:"user_id" gorm:"uniqueIndex"`
	Specialty              string  `json:"specialty"`
	Qualifications         string  `json:"qualifications"`
	Experience             int     `json:"experience"` // years
	PMDCRegistrationNumber string  `json:"pmdc_registration_number"`
	ConsultationFee        float64 `json:"consultation_fee"`
	Rating                 float64 `json:"rating" gorm:"default:0"`
	TotalRatings           int64   `json:"total_ratings" gorm:"default:0"`
	ProfilePicture         string  `json:"profile_picture"`
}

type PatientProfile struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
}

type StaffProfile struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"uniqueIndex"`
	Department    string    `json:"department"` // Reception, Pharmacy, Lab, Nursing, Administration
	Position      string    `json:"position"`
	EmployeeID    string    `json:"employee_id" gorm:"uniqueIndex"`
	DateOfJoining time.Time `json:"date_of_joining"`
}
