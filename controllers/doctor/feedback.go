package doctor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

// GetFeedback lists feedback left for the doctor, newest first, with the
// patient name resolved.
func GetFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit, offset := utils.Paginate(c)

	var feedback []models.Feedback
	if err := db.DB.Preload("Patient", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name")
	}).
		Where("doctor_id = ?", userID).
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
	db.DB.Model(&models.Feedback{}).Where("doctor_id = ?", userID).Count(&total)

	return c.JSON(fiber.Map{
		"feedback":    feedback,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}
