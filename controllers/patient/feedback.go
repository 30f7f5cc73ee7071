package patient

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

// SubmitFeedback persists a rating and folds it into the doctor's running
// average. The aggregate update is a single atomic UPDATE so concurrent
// submissions for the same doctor never lose an increment.
func SubmitFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type FeedbackInput struct {
		DoctorID      uint    `json:"doctor_id"`
		AppointmentID uint    `json:"appointment_id"`
		Rating        float64 `json:"rating"`
		Comment       string  `json:"comment"`
	}

	input := new(FeedbackInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.DoctorID == 0 || input.AppointmentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Doctor ID and appointment ID are required",
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Rating must be between 1 and 5",
		})
	}

	var doctor models.User
	if db.DB.Where("id = ? AND role = ?", input.DoctorID, models.RoleDoctor).
		First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	feedback := models.Feedback{
		DoctorID:      input.DoctorID,
		PatientID:     userID,
		AppointmentID: input.AppointmentID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}
		// newAvg = (oldAvg*oldCount + rating) / (oldCount + 1), evaluated
		// against the stored row in one statement.
		return tx.Model(&models.DoctorProfile{}).
			Where("user_id = ?", input.DoctorID).
			Updates(map[string]interface{}{
				"rating":        gorm.Expr("(rating * total_ratings + ?) / (total_ratings + 1)", feedback.Rating),
				"total_ratings": gorm.Expr("total_ratings + 1"),
			}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to submit feedback",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// GetFeedback lists the patient's own feedback, newest first, with the doctor
// name resolved.
func GetFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit, offset := utils.Paginate(c)

	var feedback []models.Feedback
	if err := db.DB.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name")
	}).
		Where("patient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch feedback",
			Error:   err.Error(),
		})
	}

	var total int64
	db.DB.Model(&models.Feedback{}).Where("patient_id = ?", userID).Count(&total)

	return c.JSON(fiber.Map{
		"feedback":    feedback,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}
