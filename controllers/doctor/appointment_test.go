package doctor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"github.com/meditrack/clinic-server/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.SendEmail = func(to, subject, body string) error { return nil }
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.PatientProfile{},
		&models.StaffProfile{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Feedback{},
		&models.SpamFeedback{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb
}

func newTestApp(doctorID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", doctorID)
		c.Locals("role", string(models.RoleDoctor))
		return c.Next()
	})
	app.Get("/doctor/appointments", GetAppointments)
	app.Patch("/doctor/appointments/:id", UpdateAppointment)
	return app
}

func seedUsers(t *testing.T) (doctor, patient models.User) {
	t.Helper()
	doctor = models.User{Name: "drbob", Email: "drbob@clinic.test", Role: models.RoleDoctor}
	patient = models.User{Name: "alice", Email: "alice@mail.test", Role: models.RolePatient}
	for _, u := range []*models.User{&doctor, &patient} {
		if err := db.DB.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	return doctor, patient
}

func createAppointment(t *testing.T, doctorID, patientID uint, dateTime time.Time, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	appointment := models.Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		DateTime:  dateTime,
		Status:    status,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return appointment
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	data, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	json.Unmarshal(data, &parsed)
	return resp, parsed
}

func TestGetAppointmentsUpcomingFilter(t *testing.T) {
	setupTestDB(t)
	doctor, patient := seedUsers(t)

	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)

	upcoming := createAppointment(t, doctor.ID, patient.ID, future, models.StatusScheduled)
	createAppointment(t, doctor.ID, patient.ID, future, models.StatusCancelled)
	createAppointment(t, doctor.ID, patient.ID, future, models.StatusCompleted)
	finished := createAppointment(t, doctor.ID, patient.ID, past, models.StatusCompleted)

	app := newTestApp(doctor.ID)

	resp, body := doJSON(t, app, "GET", "/doctor/appointments?status=upcoming", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	items, _ := body["appointments"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 upcoming appointment, got %d", len(items))
	}
	first, _ := items[0].(map[string]interface{})
	if first["ID"] != float64(upcoming.ID) {
		t.Errorf("expected appointment %d, got %v", upcoming.ID, first["ID"])
	}

	resp, body = doJSON(t, app, "GET", "/doctor/appointments?status=past", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	items, _ = body["appointments"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 past appointment, got %d", len(items))
	}
	first, _ = items[0].(map[string]interface{})
	if first["ID"] != float64(finished.ID) {
		t.Errorf("expected appointment %d, got %v", finished.ID, first["ID"])
	}

	resp, body = doJSON(t, app, "GET", "/doctor/appointments", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["total"] != float64(4) {
		t.Errorf("expected 4 appointments without filter, got %v", body["total"])
	}
}

func TestGetAppointmentsScopedToDoctor(t *testing.T) {
	setupTestDB(t)
	doctor, patient := seedUsers(t)
	other := models.User{Name: "drcarol", Email: "drcarol@clinic.test", Role: models.RoleDoctor}
	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	createAppointment(t, doctor.ID, patient.ID, time.Now(), models.StatusPending)
	createAppointment(t, other.ID, patient.ID, time.Now(), models.StatusPending)

	app := newTestApp(doctor.ID)
	resp, body := doJSON(t, app, "GET", "/doctor/appointments", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["total"] != float64(1) {
		t.Errorf("expected only own appointments, got total %v", body["total"])
	}
}

func TestUpdateAppointment(t *testing.T) {
	setupTestDB(t)
	doctor, patient := seedUsers(t)
	appointment := createAppointment(t, doctor.ID, patient.ID, time.Now(), models.StatusScheduled)
	app := newTestApp(doctor.ID)

	resp, _ := doJSON(t, app, "PATCH",
		fmt.Sprintf("/doctor/appointments/%d", appointment.ID), `{"status": "Completed"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reloaded models.Appointment
	db.DB.First(&reloaded, appointment.ID)
	if reloaded.Status != models.StatusCompleted {
		t.Errorf("expected status Completed, got %s", reloaded.Status)
	}

	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/doctor/appointments/%d", appointment.ID), `{"status": "Bogus"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", resp.StatusCode)
	}
}

func TestUpdateAppointmentNotOwned(t *testing.T) {
	setupTestDB(t)
	doctor, patient := seedUsers(t)
	other := models.User{Name: "drcarol", Email: "drcarol@clinic.test", Role: models.RoleDoctor}
	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	appointment := createAppointment(t, other.ID, patient.ID, time.Now(), models.StatusScheduled)

	app := newTestApp(doctor.ID)
	resp, _ := doJSON(t, app, "PATCH",
		fmt.Sprintf("/doctor/appointments/%d", appointment.ID), `{"status": "Completed"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for another doctor's appointment, got %d", resp.StatusCode)
	}
}
