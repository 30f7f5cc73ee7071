package patient

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

// BookAppointment creates a Pending appointment with a payment intent sized
// by the doctor's consultation fee and notifies the patient by email.
func BookAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type BookInput struct {
		DoctorID uint      `json:"doctor_id"`
		DateTime time.Time `json:"date_time"`
		Issues   string    `json:"issues"`
	}

	input := new(BookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.DoctorID == 0 || input.DateTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Doctor ID and date/time are required",
		})
	}

	var doctor models.User
	if db.DB.Preload("DoctorProfile").
		Where("id = ? AND role = ?", input.DoctorID, models.RoleDoctor).
		First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	// Fee is charged in the smallest currency unit.
	var fee float64
	if doctor.DoctorProfile != nil {
		fee = doctor.DoctorProfile.ConsultationFee
	}
	clientSecret := ""
	intentID := ""
	intent, err := utils.CreatePaymentIntent(int64(fee * 100))
	if err != nil {
		log.Printf("Failed to create payment intent for doctor %d: %v", doctor.ID, err)
	} else {
		clientSecret = intent.ClientSecret
		intentID = intent.ID
	}

	appointment := models.Appointment{
		DoctorID:        input.DoctorID,
		PatientID:       userID,
		DateTime:        input.DateTime,
		Issues:          input.Issues,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		PaymentIntentID: intentID,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to book appointment",
			Error:   err.Error(),
		})
	}

	var patient models.User
	if err := db.DB.First(&patient, userID).Error; err == nil {
		emailBody := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your appointment request has been received.</p>
			<ul>
				<li><strong>Doctor:</strong> %s</li>
				<li><strong>Date:</strong> %s</li>
			</ul>
			<p>Best regards,<br>Your Clinic Team</p>
		`, patient.Name, doctor.Name, appointment.DateTime.Format("2006-01-02 15:04:05"))
		utils.SendEmailAsync(patient.Email, "New Appointment", emailBody)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"appointment":  appointment,
		"clientSecret": clientSecret,
	})
}

// UpdatePaymentStatus marks an appointment as paid after the external
// provider confirms the charge. Only the owning patient may confirm.
func UpdatePaymentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	type PaymentInput struct {
		PaymentIntentID string `json:"payment_intent_id"`
		Status          string `json:"status"`
	}

	input := new(PaymentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if appointment.PatientID != userID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	updates := map[string]interface{}{
		"payment_status": models.PaymentPaid,
		"status":         models.StatusPending,
	}
	if input.PaymentIntentID != "" {
		updates["payment_intent_id"] = input.PaymentIntentID
	}
	if err := db.DB.Model(&appointment).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update payment status",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// GetAppointments lists the patient's own appointments, soonest first.
func GetAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit, offset := utils.Paginate(c)

	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").
		Where("patient_id = ?", userID).
		Order("date_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	for i := range appointments {
		appointments[i].Doctor.Sanitize()
	}

	var total int64
	db.DB.Model(&models.Appointment{}).Where("patient_id = ?", userID).Count(&total)

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"currentPage":  page,
		"totalPages":   utils.TotalPages(total, limit),
		"total":        total,
	})
}
