package doctor

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

// GetStats returns the doctor's dashboard counters. Trend fields are a
// stable placeholder, always zero.
func GetStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var totalAppointments int64
	db.DB.Model(&models.Appointment{}).Where("doctor_id = ?", userID).Count(&totalAppointments)

	var totalPatients int64
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", userID).
		Distinct("patient_id").
		Count(&totalPatients)

	var doctor models.User
	if err := db.DB.Preload("DoctorProfile").First(&doctor, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	var totalPrescriptions int64
	db.DB.Model(&models.Prescription{}).Where("doctor_name = ?", doctor.Name).Count(&totalPrescriptions)

	var rating float64
	if doctor.DoctorProfile != nil {
		rating = doctor.DoctorProfile.Rating
	}

	return c.JSON(fiber.Map{
		"appointments":  fiber.Map{"value": totalAppointments, "trend": 0},
		"patients":      fiber.Map{"value": totalPatients, "trend": 0},
		"prescriptions": fiber.Map{"value": totalPrescriptions, "trend": 0},
		"rating":        fiber.Map{"value": rating, "trend": 0},
	})
}

// GetPatients lists the patients the doctor has seen, searchable by name or
// email, paginated and sorted by name.
func GetPatients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	search := c.Query("search")
	page, limit, offset := utils.Paginate(c)

	patientIDs := db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", userID).
		Distinct("patient_id").
		Select("patient_id")

	query := db.DB.Model(&models.User{}).Where("id IN (?)", patientIDs)
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var patients []models.User
	if err := query.Preload("PatientProfile").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	for i := range patients {
		patients[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"patients":    patients,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}

// HistoryEntry is one row of a patient's merged appointment/prescription
// timeline.
type HistoryEntry struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IllnessType string    `json:"illness_type,omitempty"`
}

// GetPatientHistory merges the doctor's appointments with a patient and that
// patient's prescriptions into one timeline, newest first.
func GetPatientHistory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	patientID := c.Params("id")

	var appointments []models.Appointment
	if err := db.DB.Where("doctor_id = ? AND patient_id = ?", userID, patientID).
		Order("date_time DESC").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	var prescriptions []models.Prescription
	if err := db.DB.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}

	history := make([]HistoryEntry, 0, len(appointments)+len(prescriptions))
	for _, apt := range appointments {
		issues := apt.Issues
		if issues == "" {
			issues = "No issues specified"
		}
		history = append(history, HistoryEntry{
			ID:          apt.ID,
			Type:        "appointment",
			Date:        apt.DateTime,
			Description: fmt.Sprintf("Appointment - %s - %s", apt.Status, issues),
		})
	}
	for _, pres := range prescriptions {
		history = append(history, HistoryEntry{
			ID:          pres.ID,
			Type:        "prescription",
			Date:        pres.CreatedAt,
			Description: fmt.Sprintf("Prescription - %s", pres.IllnessType),
			DoctorName:  pres.DoctorName,
			ImageURL:    pres.ImageURL,
			IllnessType: pres.IllnessType,
		})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	return c.JSON(fiber.Map{"history": history})
}
