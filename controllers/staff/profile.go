package staff

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("StaffProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Staff not found",
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Name       string `json:"name"`
		Department string `json:"department"`
		Position   string `json:"position"`
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
			Message: "Staff not found",
		})
	}

	if input.Name != "" {
		if err := db.DB.Model(&user).Update("name", input.Name).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
				Error:   err.Error(),
			})
		}
	}

	updates := map[string]interface{}{}
	if input.Department != "" {
		updates["department"] = input.Department
	}
	if input.Position != "" {
		updates["position"] = input.Position
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&models.StaffProfile{}).
			Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Preload("StaffProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload profile",
			Error:   err.Error(),
		})
	}
	user.Sanitize()
	return c.JSON(user)
}

// SearchPatients finds patients by name substring, case-insensitive.
func SearchPatients(c *fiber.Ctx) error {
	name := c.Query("name")

	query := db.DB.Model(&models.User{}).Where("role = ?", models.RolePatient)
	if name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}

	var patients []models.User
	if err := query.Preload("PatientProfile").Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search patients",
			Error:   err.Error(),
		})
	}
	for i := range patients {
		patients[i].Sanitize()
	}

	return c.JSON(fiber.Map{"patients": patients})
}
