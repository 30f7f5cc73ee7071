package staff

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

func newTestApp(staffID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", staffID)
		c.Locals("role", string(models.RoleStaff))
		return c.Next()
	})
	app.Patch("/staff/appointments/:id/schedule", ScheduleAppointment)
	app.Get("/staff/appointments", GetAppointments)
	app.Patch("/staff/appointments/:id", UpdateAppointment)
	return app
}

func seedAppointment(t *testing.T, dateTime time.Time) (models.User, models.Appointment) {
	t.Helper()
	staff := models.User{Name: "sam", Email: "sam@clinic.test", Role: models.RoleStaff}
	doctor := models.User{Name: "drbob", Email: "drbob@clinic.test", Role: models.RoleDoctor}
	patient := models.User{Name: "alice", Email: "alice@mail.test", Role: models.RolePatient}
	for _, u := range []*models.User{&staff, &doctor, &patient} {
		if err := db.DB.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	appointment := models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		DateTime:  dateTime,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
	return staff, appointment
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

func TestScheduleAppointment(t *testing.T) {
	tests := []struct {
		slot   string
		hour   int
		minute int
	}{
		{"2:30 PM", 14, 30},
		{"12:00 AM", 0, 0},
		{"12:00 PM", 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			setupTestDB(t)
			day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
			staff, appointment := seedAppointment(t, day)
			app := newTestApp(staff.ID)

			resp, _ := doJSON(t, app, "PATCH",
				fmt.Sprintf("/staff/appointments/%d/schedule", appointment.ID),
				fmt.Sprintf(`{"slot": %q}`, tt.slot))
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}

			var reloaded models.Appointment
			db.DB.First(&reloaded, appointment.ID)
			if reloaded.Status != models.StatusScheduled {
				t.Errorf("expected status Scheduled, got %s", reloaded.Status)
			}
			got := reloaded.DateTime.UTC()
			if got.Year() != 2024 || got.Month() != time.January || got.Day() != 1 {
				t.Errorf("date changed: got %s", got)
			}
			if got.Hour() != tt.hour || got.Minute() != tt.minute {
				t.Errorf("slot %q resolved to %02d:%02d, want %02d:%02d",
					tt.slot, got.Hour(), got.Minute(), tt.hour, tt.minute)
			}
		})
	}
}

func TestScheduleAppointmentInvalidSlot(t *testing.T) {
	setupTestDB(t)
	staff, appointment := seedAppointment(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	app := newTestApp(staff.ID)

	for _, slot := range []string{"2:30", "25:00 PM", "2:30 XM"} {
		resp, _ := doJSON(t, app, "PATCH",
			fmt.Sprintf("/staff/appointments/%d/schedule", appointment.ID),
			fmt.Sprintf(`{"slot": %q}`, slot))
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("slot %q: expected 400, got %d", slot, resp.StatusCode)
		}
	}

	resp, _ := doJSON(t, app, "PATCH",
		fmt.Sprintf("/staff/appointments/%d/schedule", appointment.ID), `{}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("missing slot: expected 400, got %d", resp.StatusCode)
	}

	var reloaded models.Appointment
	db.DB.First(&reloaded, appointment.ID)
	if reloaded.Status == models.StatusScheduled {
		t.Errorf("appointment was scheduled despite invalid slots")
	}
}

func TestScheduleAppointmentNotFound(t *testing.T) {
	setupTestDB(t)
	staff, _ := seedAppointment(t, time.Now())
	app := newTestApp(staff.ID)

	resp, _ := doJSON(t, app, "PATCH", "/staff/appointments/999/schedule", `{"slot": "2:30 PM"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	setupTestDB(t)
	staff, appointment := seedAppointment(t, time.Now())
	app := newTestApp(staff.ID)

	resp, _ := doJSON(t, app, "PATCH",
		fmt.Sprintf("/staff/appointments/%d", appointment.ID), `{"status": "Confirmed"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reloaded models.Appointment
	db.DB.First(&reloaded, appointment.ID)
	if reloaded.Status != models.StatusConfirmed {
		t.Errorf("expected status Confirmed, got %s", reloaded.Status)
	}

	resp, _ = doJSON(t, app, "PATCH",
		fmt.Sprintf("/staff/appointments/%d", appointment.ID), `{"status": "Nonsense"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", resp.StatusCode)
	}
}

func TestGetAppointmentsStatusFilter(t *testing.T) {
	setupTestDB(t)
	staff, appointment := seedAppointment(t, time.Now())
	app := newTestApp(staff.ID)

	other := models.Appointment{
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		DateTime:  time.Now().Add(time.Hour),
		Status:    models.StatusScheduled,
	}
	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	resp, body := doJSON(t, app, "GET", "/staff/appointments?status=Scheduled", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	items, _ := body["appointments"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected 1 scheduled appointment, got %d", len(items))
	}
	if body["total"] != float64(1) {
		t.Errorf("expected total 1, got %v", body["total"])
	}
}
