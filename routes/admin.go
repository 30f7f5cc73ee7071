package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/controllers/admin"
	"github.com/meditrack/clinic-server/middleware"
	"github.com/meditrack/clinic-server/models"
)

// SetupAdminRoutes configures all admin related routes
func SetupAdminRoutes(app *fiber.App) {
	a := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	a.Get("/dashboard", admin.GetDashboard)

	a.Get("/feedback", admin.GetFeedback)
	a.Patch("/feedback/:id/moderate", admin.ModerateFeedback)

	a.Post("/spam-feedback", admin.CreateSpamFeedback)
	a.Get("/spam-feedback", admin.GetSpamFeedbacks)
	a.Patch("/spam-feedback/:id/resolve", admin.ResolveSpamFeedback)

	a.Get("/users", admin.GetUsers)
	a.Patch("/users/:id/ban", admin.BanUser)
	a.Patch("/users/:id/activate", admin.ActivateUser)
}
