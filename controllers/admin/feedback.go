package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

// activeSpamStatuses are the report states that hide a feedback item from
// the moderation feed. A Dismissed report leaves the feedback visible.
var activeSpamStatuses = []models.SpamStatus{models.SpamPending, models.SpamResolved}

// GetFeedback lists feedback for moderation, excluding any item with a spam
// report in Pending or Resolved state (anti-join on the report table).
func GetFeedback(c *fiber.Ctx) error {
	page, limit, offset := utils.Paginate(c)

	reported := db.DB.Model(&models.SpamFeedback{}).
		Where("status IN ?", activeSpamStatuses).
		Select("feedback_id")

	query := db.DB.Model(&models.Feedback{}).Where("id NOT IN (?)", reported)

	var total int64
	query.Count(&total)

	var feedback []models.Feedback
	if err := query.
		Preload("Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch feedback",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"feedback":    feedback,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}

// ModerateFeedback sets the moderation flag on a feedback item. Independent
// of the spam-report workflow.
func ModerateFeedback(c *fiber.Ctx) error {
	id := c.Params("id")

	type ModerateInput struct {
		IsModerated bool `json:"is_moderated"`
	}

	input := new(ModerateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var feedback models.Feedback
	if db.DB.First(&feedback, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Feedback not found",
		})
	}

	if err := db.DB.Model(&feedback).Update("is_moderated", input.IsModerated).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to moderate feedback",
			Error:   err.Error(),
		})
	}

	return c.JSON(feedback)
}

// CreateSpamFeedback raises a spam report against a feedback item. At most
// one report may exist per feedback; the unique index is the authority and a
// duplicate insert comes back as Conflict.
func CreateSpamFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type SpamInput struct {
		FeedbackID uint   `json:"feedback_id"`
		Reason     string `json:"reason"`
	}

	input := new(SpamInput)
	if err := c.BodyParser(input); err != nil || input.FeedbackID == 0 || input.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Feedback ID and reason are required",
		})
	}

	var feedback models.Feedback
	if db.DB.First(&feedback, input.FeedbackID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Feedback not found",
		})
	}

	// Fast path; the unique index still decides under a race.
	var existing models.SpamFeedback
	if db.DB.Where("feedback_id = ?", input.FeedbackID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This feedback has already been reported",
		})
	}

	report := models.SpamFeedback{
		FeedbackID:   input.FeedbackID,
		ReportedByID: userID,
		Reason:       input.Reason,
		Status:       models.SpamPending,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "This feedback has already been reported",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create spam report",
			Error:   err.Error(),
		})
	}

	if err := db.DB.
		Preload("Feedback.Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("Feedback.Doctor", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("ReportedBy", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		First(&report, report.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load spam report",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetSpamFeedbacks lists all spam reports, newest first, with reporter and
// counterpart names resolved.
func GetSpamFeedbacks(c *fiber.Ctx) error {
	page, limit, offset := utils.Paginate(c)

	var reports []models.SpamFeedback
	if err := db.DB.
		Preload("Feedback.Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("Feedback.Doctor", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Preload("ReportedBy", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch spam reports",
			Error:   err.Error(),
		})
	}

	var total int64
	db.DB.Model(&models.SpamFeedback{}).Count(&total)

	return c.JSON(fiber.Map{
		"spamFeedbacks": reports,
		"currentPage":   page,
		"totalPages":    utils.TotalPages(total, limit),
		"total":         total,
	})
}

// ResolveSpamFeedback records the admin's decision on a report. It has no
// cascading effect on the underlying feedback; visibility is driven by the
// report status alone.
func ResolveSpamFeedback(c *fiber.Ctx) error {
	id := c.Params("id")

	type ResolveInput struct {
		Status     models.SpamStatus `json:"status"`
		Resolution string            `json:"resolution"`
	}

	input := new(ResolveInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	switch input.Status {
	case models.SpamPending, models.SpamResolved, models.SpamDismissed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid spam report status",
		})
	}

	var report models.SpamFeedback
	if db.DB.First(&report, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Spam report not found",
		})
	}

	if err := db.DB.Model(&report).Updates(map[string]interface{}{
		"status":     input.Status,
		"resolution": input.Resolution,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to resolve spam report",
			Error:   err.Error(),
		})
	}

	return c.JSON(report)
}
