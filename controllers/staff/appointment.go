package staff

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

// ScheduleAppointment assigns a time slot to an appointment. The slot comes
// in as a 12-hour clock string ("2:30 PM") and is combined with the
// appointment's existing date; the patient gets a confirmation email with the
// resolved 24-hour time.
func ScheduleAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	type ScheduleInput struct {
		Slot string `json:"slot"`
	}

	input := new(ScheduleInput)
	if err := c.BodyParser(input); err != nil || input.Slot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Slot time is required",
		})
	}

	var appointment models.Appointment
	if db.DB.Preload("Doctor").Preload("Patient").
		First(&appointment, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	hour, minute, err := utils.ParseTimeSlot(input.Slot)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid slot time",
			Error:   err.Error(),
		})
	}

	d := appointment.DateTime
	newDateTime := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())

	if err := db.DB.Model(&appointment).Updates(map[string]interface{}{
		"date_time": newDateTime,
		"status":    models.StatusScheduled,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to schedule appointment",
			Error:   err.Error(),
		})
	}

	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been scheduled.</p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %02d:%02d</li>
		</ul>
		<p>Best regards,<br>Your Clinic Team</p>
	`, appointment.Patient.Name, appointment.Doctor.Name,
		newDateTime.Format("2006-01-02"), hour, minute)
	utils.SendEmailAsync(appointment.Patient.Email, "Appointment Scheduled", emailBody)

	appointment.DateTime = newDateTime
	appointment.Status = models.StatusScheduled
	appointment.Doctor.Sanitize()
	appointment.Patient.Sanitize()
	return c.JSON(appointment)
}

// GetAppointments lists all appointments, optionally filtered by status,
// soonest first.
func GetAppointments(c *fiber.Ctx) error {
	page, limit, offset := utils.Paginate(c)

	query := db.DB.Model(&models.Appointment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.
		Preload("Doctor", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
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

// UpdateAppointment sets a new status. Staff-side updates do not email the
// patient.
func UpdateAppointment(c *fiber.Ctx) error {
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
	if db.DB.First(&appointment, id).RowsAffected == 0 {
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

	return c.JSON(appointment)
}
