package doctor

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("DoctorProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Name            string  `json:"name"`
		Specialty       string  `json:"specialty"`
		Qualifications  string  `json:"qualifications"`
		Experience      int     `json:"experience"`
		ConsultationFee float64 `json:"consultation_fee"`
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
			Message: "Doctor not found",
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
	if input.Specialty != "" {
		updates["specialty"] = input.Specialty
	}
	if input.Qualifications != "" {
		updates["qualifications"] = input.Qualifications
	}
	if input.Experience != 0 {
		updates["experience"] = input.Experience
	}
	if input.ConsultationFee != 0 {
		updates["consultation_fee"] = input.ConsultationFee
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&models.DoctorProfile{}).
			Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Preload("DoctorProfile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload profile",
			Error:   err.Error(),
		})
	}
	user.Sanitize()
	return c.JSON(user)
}

// UploadProfilePicture stores the uploaded image on Cloudinary and saves the
// returned URL on the doctor's profile.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	imageURL, err := utils.UploadToCloudinary(file, fmt.Sprintf("doctor-%d", userID), "profile-pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.DoctorProfile{}).
		Where("user_id = ?", userID).
		Update("profile_picture", imageURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save profile picture",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"profile_picture": imageURL})
}
