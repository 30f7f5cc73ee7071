package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/controllers/staff"
	"github.com/meditrack/clinic-server/middleware"
	"github.com/meditrack/clinic-server/models"
)

// SetupStaffRoutes configures all staff related routes
func SetupStaffRoutes(app *fiber.App) {
	s := app.Group("/staff", middleware.Protected(), middleware.RequireRole(models.RoleStaff))

	s.Get("/profile", staff.GetProfile)
	s.Put("/profile", staff.UpdateProfile)

	s.Post("/prescriptions", staff.CreatePrescription)
	s.Get("/prescriptions", staff.GetPrescriptions)
	s.Patch("/prescriptions/:id", staff.UpdatePrescription)
	s.Delete("/prescriptions/:id", staff.DeletePrescription)

	s.Get("/appointments", staff.GetAppointments)
	s.Patch("/appointments/:id", staff.UpdateAppointment)
	s.Patch("/appointments/:id/schedule", staff.ScheduleAppointment)

	s.Get("/patients/search", staff.SearchPatients)
}
