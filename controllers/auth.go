package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/middleware"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the shared identity fields plus the role-specific
// payload; which payload fields are read depends on the role.
type RegisterInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`

	// doctor
	Specialty              string  `json:"specialty"`
	Qualifications         string  `json:"qualifications"`
	Experience             int     `json:"experience"`
	PMDCRegistrationNumber string  `json:"pmdc_registration_number"`
	ConsultationFee        float64 `json:"consultation_fee"`

	// patient
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`

	// staff
	Department string `json:"department"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
}

func issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Expires:  time.Now().Add(time.Hour * 24),
	})
}

// createRoleProfile attaches the role payload row to a freshly created user.
func createRoleProfile(tx *gorm.DB, user *models.User, input *RegisterInput) error {
	switch user.Role {
	case models.RoleDoctor:
		return tx.Create(&models.DoctorProfile{
			UserID:                 user.ID,
			Specialty:              input.Specialty,
			Qualifications:         input.Qualifications,
			Experience:             input.Experience,
			PMDCRegistrationNumber: input.PMDCRegistrationNumber,
			ConsultationFee:        input.ConsultationFee,
		}).Error
	case models.RolePatient:
		return tx.Create(&models.PatientProfile{
			UserID:      user.ID,
			DateOfBirth: input.DateOfBirth,
			Gender:      input.Gender,
		}).Error
	case models.RoleStaff:
		return tx.Create(&models.StaffProfile{
			UserID:        user.ID,
			Department:    input.Department,
			Position:      input.Position,
			EmployeeID:    input.EmployeeID,
			DateOfJoining: time.Now(),
		}).Error
	}
	return nil
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	switch input.Role {
	case models.RolePatient, models.RoleDoctor, models.RoleStaff, models.RoleAdmin:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role",
		})
	}

	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}

	user := models.User{
		Name:            input.Name,
		Email:           input.Email,
		Password:        string(hashedPassword),
		Role:            input.Role,
		ProfileComplete: true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createRoleProfile(tx, &user, input)
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create user",
		})
	}

	utils.SendEmailAsync(user.Email, "Welcome to the clinic",
		"<p>Dear "+user.Name+",</p><p>Your account has been created successfully.</p>")

	user.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles credential authentication and sets the session cookie.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}
	setSessionCookie(c, tokenString)

	return c.JSON(fiber.Map{
		"token": tokenString,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GoogleLogin signs in an existing user from a verified Google ID token.
func GoogleLogin(c *fiber.Ctx) error {
	type GoogleInput struct {
		Token string `json:"token"`
	}

	input := new(GoogleInput)
	if err := c.BodyParser(input); err != nil || input.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token is required",
		})
	}

	identity, err := utils.VerifyGoogleToken(c.Context(), input.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid Google token",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", identity.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}
	setSessionCookie(c, tokenString)

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GoogleSignup creates an account from a verified Google ID token. The role
// payload starts as a placeholder; the client finishes it via
// CompleteProfile, which is when a session token is issued.
func GoogleSignup(c *fiber.Ctx) error {
	type GoogleSignupInput struct {
		Token string          `json:"token"`
		Role  models.UserRole `json:"role"`
	}

	input := new(GoogleSignupInput)
	if err := c.BodyParser(input); err != nil || input.Token == "" || input.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token and role are required",
		})
	}

	identity, err := utils.VerifyGoogleToken(c.Context(), input.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid Google token",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", identity.Email).First(&user).RowsAffected == 0 {
		user = models.User{
			Name:        identity.Name,
			Email:       identity.Email,
			Role:        input.Role,
			IsOAuthUser: true,
		}
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return createRoleProfile(tx, &user, &RegisterInput{Role: input.Role})
		})
		if err != nil {
			log.Printf("Error creating OAuth user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to create user",
			})
		}
	}

	if !user.ProfileComplete {
		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
			"requiresAdditionalInfo": true,
		})
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}
	setSessionCookie(c, tokenString)

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// CompleteProfile fills in the role payload for an OAuth user and issues the
// session token.
func CompleteProfile(c *fiber.Ctx) error {
	type CompleteInput struct {
		UserID uint `json:"user_id"`
		RegisterInput
	}

	input := new(CompleteInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := db.DB.First(&user, input.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		switch user.Role {
		case models.RoleDoctor:
			if err := tx.Model(&models.DoctorProfile{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
				"specialty":                input.Specialty,
				"qualifications":           input.Qualifications,
				"experience":               input.Experience,
				"pmdc_registration_number": input.PMDCRegistrationNumber,
				"consultation_fee":         input.ConsultationFee,
			}).Error; err != nil {
				return err
			}
		case models.RolePatient:
			if err := tx.Model(&models.PatientProfile{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
				"date_of_birth": input.DateOfBirth,
				"gender":        input.Gender,
			}).Error; err != nil {
				return err
			}
		case models.RoleStaff:
			if err := tx.Model(&models.StaffProfile{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
				"department":  input.Department,
				"position":    input.Position,
				"employee_id": input.EmployeeID,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&user).Update("profile_complete", true).Error
	})
	if err != nil {
		log.Printf("Complete profile error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to complete profile",
		})
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}
	setSessionCookie(c, tokenString)

	user.Sanitize()
	return c.JSON(fiber.Map{"token": tokenString, "user": user})
}

// GetUserProfile returns the current user's identity and role payload.
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User ID not found in context",
		})
	}

	var user models.User
	if err := db.DB.Preload("DoctorProfile").Preload("PatientProfile").Preload("StaffProfile").
		First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

// Logout clears the session cookie. The JWT itself stays valid until expiry.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// ForgotPassword emails a one-time reset token.
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	resetToken := utils.GenerateResetToken()
	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":   resetToken,
		"reset_password_expires": time.Now().Add(time.Hour),
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create reset token",
		})
	}

	utils.SendEmailAsync(user.Email, "Password Reset",
		"<p>Use this token to reset your password: <strong>"+resetToken+"</strong></p><p>It expires in one hour.</p>")

	return c.JSON(fiber.Map{
		"message": "Password reset email sent",
	})
}

// ResetPassword sets a new password for a valid, unexpired reset token.
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil || input.Token == "" || input.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token and new password are required",
		})
	}

	var user models.User
	if db.DB.Where("reset_password_token = ? AND reset_password_expires > ?", input.Token, time.Now()).
		First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}

	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"password":               string(hashedPassword),
		"reset_password_token":   "",
		"reset_password_expires": time.Time{},
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to reset password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password reset successful",
	})
}
