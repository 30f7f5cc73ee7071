package patient

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
)

// GetAllDoctors returns every doctor with their profile.
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.User
	if err := db.DB.Preload("DoctorProfile").
		Where("role = ?", models.RoleDoctor).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	for i := range doctors {
		doctors[i].Sanitize()
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}

// SearchDoctors filters doctors by specialty and/or name substring,
// case-insensitive, paginated.
func SearchDoctors(c *fiber.Ctx) error {
	specialty := c.Query("specialty")
	name := c.Query("name")
	page, limit, offset := utils.Paginate(c)

	query := db.DB.Model(&models.User{}).
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = users.id").
		Where("users.role = ?", models.RoleDoctor)
	if specialty != "" {
		query = query.Where("LOWER(doctor_profiles.specialty) LIKE LOWER(?)", "%"+specialty+"%")
	}
	if name != "" {
		query = query.Where("LOWER(users.name) LIKE LOWER(?)", "%"+name+"%")
	}

	var total int64
	query.Count(&total)

	var doctors []models.User
	if err := query.Preload("DoctorProfile").
		Limit(limit).
		Offset(offset).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search doctors",
			Error:   err.Error(),
		})
	}
	for i := range doctors {
		doctors[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"doctors":     doctors,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}

// GetDoctorByID returns a single doctor with profile.
func GetDoctorByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.User
	if db.DB.Preload("DoctorProfile").
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		First(&doctor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	doctor.Sanitize()
	return c.JSON(fiber.Map{"doctor": doctor})
}
