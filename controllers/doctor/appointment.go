package doctor

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

// GetAppointments lists the doctor's own appointments. status=upcoming keeps
// future appointments that are not Completed/Cancelled; status=past keeps
// everything before now.
func GetAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit, offset := utils.Paginate(c)

	query := db.DB.Model(&models.Appointment{}).Where("doctor_id = ?", userID)
	switch c.Query("status") {
	case "upcoming":
		query = query.Where("date_time >= ? AND status NOT IN ?",
			time.Now(), []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled})
	case "past":
		query = query.Where("date_time < ?", time.Now())
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Preload("Patient", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name")
	}).
		Order("date_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"currentPage":  page,
		"totalPages":   utils.TotalPages(total, limit),
		"total":        total,
	})
}

// UpdateAppointment sets a new status on one of the doctor's appointments and
// notifies the patient. Any enumerated status may follow any other.
func UpdateAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	type StatusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if !models.IsValidStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment status",
		})
	}

	var appointment models.Appointment
	if db.DB.Where("id = ? AND doctor_id = ?", id, userID).
		First(&appointment).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if err := db.DB.Model(&appointment).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	var patient models.User
	if err := db.DB.First(&patient, appointment.PatientID).Error; err == nil {
		utils.SendEmailAsync(patient.Email, "Appointment Update",
			fmt.Sprintf("<h1>Your appointment status has been updated to %s</h1>", input.Status))
	}

	return c.JSON(appointment)
}
