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

// uploadedImageURL pushes an optional multipart "image" file to Cloudinary
// and returns the stored URL, or "" when no file was attached.
func uploadedImageURL(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return utils.UploadToCloudinary(file,
		fmt.Sprintf("prescription-%d", time.Now().UnixNano()), "prescriptions")
}

// CreatePrescription records a staff-authored prescription, optionally with
// an attached image.
func CreatePrescription(c *fiber.Ctx) error {
	type PrescriptionInput struct {
		PatientID   uint   `json:"patient_id" form:"patient_id"`
		DoctorName  string `json:"doctor_name" form:"doctor_name"`
		IllnessType string `json:"illness_type" form:"illness_type"`
	}

	input := new(PrescriptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.DoctorName == "" || input.IllnessType == "" || input.PatientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Doctor name, illness type, and patient ID are required",
		})
	}

	var patient models.User
	if db.DB.Where("id = ? AND role = ?", input.PatientID, models.RolePatient).
		First(&patient).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}

	imageURL, err := uploadedImageURL(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload prescription image",
			Error:   err.Error(),
		})
	}

	prescription := models.Prescription{
		PatientID:   input.PatientID,
		DoctorName:  input.DoctorName,
		IllnessType: input.IllnessType,
		ImageURL:    imageURL,
	}
	if err := db.DB.Create(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create prescription",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(prescription)
}

// GetPrescriptions lists prescriptions, optionally for one patient, newest
// first.
func GetPrescriptions(c *fiber.Ctx) error {
	page, limit, offset := utils.Paginate(c)

	query := db.DB.Model(&models.Prescription{})
	if patientID := c.Query("patient_id"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var total int64
	query.Count(&total)

	var prescriptions []models.Prescription
	if err := query.
		Preload("Patient", func(db *gorm.DB) *gorm.DB { return db.Select("id, name") }).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"prescriptions": prescriptions,
		"currentPage":   page,
		"totalPages":    utils.TotalPages(total, limit),
		"total":         total,
	})
}

// UpdatePrescription edits prescription fields and/or replaces the image.
func UpdatePrescription(c *fiber.Ctx) error {
	id := c.Params("id")

	type UpdateInput struct {
		DoctorName  string `json:"doctor_name" form:"doctor_name"`
		IllnessType string `json:"illness_type" form:"illness_type"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var prescription models.Prescription
	if db.DB.First(&prescription, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}

	imageURL, err := uploadedImageURL(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload prescription image",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.DoctorName != "" {
		updates["doctor_name"] = input.DoctorName
	}
	if input.IllnessType != "" {
		updates["illness_type"] = input.IllnessType
	}
	if imageURL != "" {
		updates["image_url"] = imageURL
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&prescription).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update prescription",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(prescription)
}

// DeletePrescription removes a prescription record.
func DeletePrescription(c *fiber.Ctx) error {
	id := c.Params("id")

	var prescription models.Prescription
	if db.DB.First(&prescription, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Prescription not found",
		})
	}

	if err := db.DB.Delete(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete prescription",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Prescription deleted successfully"})
}
