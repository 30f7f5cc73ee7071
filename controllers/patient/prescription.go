package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

// GetPrescriptions lists the patient's own prescriptions, newest first.
func GetPrescriptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit, offset := utils.Paginate(c)

	var prescriptions []models.Prescription
	if err := db.DB.Where("patient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}

	var total int64
	db.DB.Model(&models.Prescription{}).Where("patient_id = ?", userID).Count(&total)

	return c.JSON(fiber.Map{
		"prescriptions": prescriptions,
		"currentPage":   page,
		"totalPages":    utils.TotalPages(total, limit),
		"total":         total,
	})
}

// GetPrescription returns one of the patient's own prescriptions.
func GetPrescription(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var prescription models.Prescription
	if db.DB.Where("id = ? AND patient_id = ?", id, userID).
		First(&prescription).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}
	return c.JSON(prescription)
}

// GetStats returns the dashboard counters for the patient. Trend fields are
// a stable placeholder, always zero.
func GetStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var totalAppointments int64
	db.DB.Model(&models.Appointment{}).Where("patient_id = ?", userID).Count(&totalAppointments)

	var upcomingVisits int64
	db.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND date_time >= ?", userID, time.Now()).
		Count(&upcomingVisits)

	var activePrescriptions int64
	db.DB.Model(&models.Prescription{}).
		Where("patient_id = ? AND is_active = ?", userID, true).
		Count(&activePrescriptions)

	return c.JSON(fiber.Map{
		"appointments":   fiber.Map{"value": totalAppointments, "trend": 0},
		"upcomingVisits": fiber.Map{"value": upcomingVisits, "trend": 0},
		"prescriptions":  fiber.Map{"value": activePrescriptions, "trend": 0},
	})
}
