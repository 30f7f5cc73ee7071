package admin

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/redis"
	"github.com/meditrack/clinic-server/utils"
)

const dashboardCacheKey = "admin:dashboard"

type dashboardCounts struct {
	UserCount         int64 `json:"userCount"`
	DoctorCount       int64 `json:"doctorCount"`
	PatientCount      int64 `json:"patientCount"`
	FeedbackCount     int64 `json:"feedbackCount"`
	SpamFeedbackCount int64 `json:"spamFeedbackCount"`
}

// GetDashboard returns the aggregate counters for the admin dashboard,
// served from a short-lived Redis cache when available.
func GetDashboard(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, dashboardCacheKey).Result(); err == nil {
			var counts dashboardCounts
			if json.Unmarshal([]byte(cached), &counts) == nil {
				return c.JSON(counts)
			}
		}
	}

	var counts dashboardCounts
	db.DB.Model(&models.User{}).Count(&counts.UserCount)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleDoctor).Count(&counts.DoctorCount)
	db.DB.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&counts.PatientCount)
	db.DB.Model(&models.Feedback{}).Count(&counts.FeedbackCount)
	db.DB.Model(&models.SpamFeedback{}).Where("status = ?", models.SpamPending).Count(&counts.SpamFeedbackCount)

	if redis.Client != nil {
		if payload, err := json.Marshal(counts); err == nil {
			if err := redis.Client.Set(redis.Ctx, dashboardCacheKey, payload, 30*time.Second).Err(); err != nil {
				log.Printf("Failed to cache dashboard counts: %v", err)
			}
		}
	}

	return c.JSON(counts)
}

// GetUsers lists users for the admin console: admins and banned accounts are
// excluded, an optional role filter narrows the set.
func GetUsers(c *fiber.Ctx) error {
	page, limit, offset := utils.Paginate(c)

	query := db.DB.Model(&models.User{}).
		Where("role <> ? AND is_banned = ?", models.RoleAdmin, false)
	if role := c.Query("role"); role != "" && role != "all" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"users":       users,
		"currentPage": page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
	})
}

func setBanned(c *fiber.Ctx, banned bool) error {
	id := c.Params("id")

	var user models.User
	if db.DB.First(&user, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if err := db.DB.Model(&user).Update("is_banned", banned).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

// BanUser flags the account; banned users are rejected at the role gate.
func BanUser(c *fiber.Ctx) error {
	return setBanned(c, true)
}

// ActivateUser lifts a ban.
func ActivateUser(c *fiber.Ctx) error {
	return setBanned(c, false)
}
