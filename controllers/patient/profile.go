package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/gorm"
)

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("PatientProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User profile not found",
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Name        string    `json:"name"`
		DateOfBirth time.Time `json:"date_of_birth"`
		Gender      string    `json:"gender"`
	}

	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if input.Name != "" {
			if err := tx.Model(&user).Update("name", input.Name).Error; err != nil {
				return err
			}
		}
		updates := map[string]interface{}{}
		if !input.DateOfBirth.IsZero() {
			updates["date_of_birth"] = input.DateOfBirth
		}
		if input.Gender != "" {
			updates["gender"] = input.Gender
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.PatientProfile{}).Where("user_id = ?", userID).Updates(updates).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Preload("PatientProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload profile",
			Error:   err.Error(),
		})
	}
	user.Sanitize()
	return c.JSON(user)
}
