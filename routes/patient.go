package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/controllers/patient"
	"github.com/meditrack/clinic-server/middleware"
	"github.com/meditrack/clinic-server/models"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	p := app.Group("/patient", middleware.Protected(), middleware.RequireRole(models.RolePatient))

	p.Get("/profile", patient.GetProfile)
	p.Put("/profile", patient.UpdateProfile)

	p.Get("/doctors", patient.GetAllDoctors)
	p.Get("/doctors/search", patient.SearchDoctors)
	p.Get("/doctors/:id", patient.GetDoctorByID)

	p.Post("/appointments", patient.BookAppointment)
	p.Get("/appointments", patient.GetAppointments)
	p.Patch("/appointments/:id/payment", patient.UpdatePaymentStatus)

	p.Post("/feedback", patient.SubmitFeedback)
	p.Get("/feedback", patient.GetFeedback)

	p.Get("/prescriptions", patient.GetPrescriptions)
	p.Get("/prescriptions/:id", patient.GetPrescription)

	p.Get("/stats", patient.GetStats)
}
