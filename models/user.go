package models

import (
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	Name                 string          `json:"name"`
	Email                string          `json:"email" gorm:"unique"`
	Password             string          `json:"password,omitempty"`
	Role                 UserRole        `json:"role" gorm:"index"`
	IsBanned             bool            `json:"is_banned" gorm:"default:false"`
	IsOAuthUser          bool            `json:"is_oauth_user" gorm:"default:false"`
	ProfileComplete      bool            `json:"profile_complete" gorm:"default:false"`
	ResetPasswordToken   string          `json:"-"`
	ResetPasswordExpires time.Time       `json:"-"`
	DoctorProfile        *DoctorProfile  `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	PatientProfile       *PatientProfile `json:"patient_profile,omitempty" gorm:"foreignKey:UserID"`
	StaffProfile         *StaffProfile   `json:"staff_profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Sanitize strips credential fields before the user is written to a response.
func (u *User) Sanitize() {
	u.Password = ""
	u.ResetPasswordToken = ""
}
