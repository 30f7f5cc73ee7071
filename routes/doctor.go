package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/controllers/doctor"
	"github.com/meditrack/clinic-server/middleware"
	"github.com/meditrack/clinic-server/models"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	d := app.Group("/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	d.Get("/profile", doctor.GetProfile)
	d.Put("/profile", doctor.UpdateProfile)
	d.Post("/profile/picture", doctor.UploadProfilePicture)

	d.Get("/appointments", doctor.GetAppointments)
	d.Patch("/appointments/:id", doctor.UpdateAppointment)

	d.Get("/stats", doctor.GetStats)
	d.Get("/patients", doctor.GetPatients)
	d.Get("/patients/:id/history", doctor.GetPatientHistory)
	d.Get("/feedback", doctor.GetFeedback)
}
