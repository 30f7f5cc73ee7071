package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/controllers"
	"github.com/meditrack/clinic-server/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/google-login", controllers.GoogleLogin)
	auth.Post("/google-signup", controllers.GoogleSignup)
	auth.Post("/complete-profile", controllers.CompleteProfile)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
