package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/meditrack/clinic-server/db"
	"github.com/meditrack/clinic-server/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func newTestApp(adminID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", adminID)
		c.Locals("role", string(models.RoleAdmin))
		return c.Next()
	})
	app.Get("/admin/feedback", GetFeedback)
	app.Patch("/admin/feedback/:id/moderate", ModerateFeedback)
	app.Post("/admin/spam-feedback", CreateSpamFeedback)
	app.Get("/admin/spam-feedback", GetSpamFeedbacks)
	app.Patch("/admin/spam-feedback/:id/resolve", ResolveSpamFeedback)
	return app
}

func seedFeedback(t *testing.T) (admin models.User, feedback []models.Feedback) {
	t.Helper()
	admin = models.User{Name: "root", Email: "root@clinic.test", Role: models.RoleAdmin}
	doctor := models.User{Name: "drbob", Email: "drbob@clinic.test", Role: models.RoleDoctor}
	patient := models.User{Name: "alice", Email: "alice@mail.test", Role: models.RolePatient}
	for _, u := range []*models.User{&admin, &doctor, &patient} {
		if err := db.DB.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		f := models.Feedback{
			DoctorID:      doctor.ID,
			PatientID:     patient.ID,
			AppointmentID: uint(i + 1),
			Rating:        4,
			Comment:       fmt.Sprintf("comment %d", i),
		}
		if err := db.DB.Create(&f).Error; err != nil {
			t.Fatalf("failed to seed feedback: %v", err)
		}
		feedback = append(feedback, f)
	}
	return admin, feedback
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

func TestCreateSpamFeedbackConflict(t *testing.T) {
	setupTestDB(t)
	admin, feedback := seedFeedback(t)
	app := newTestApp(admin.ID)

	body := fmt.Sprintf(`{"feedback_id": %d, "reason": "abusive language"}`, feedback[0].ID)

	resp, _ := doJSON(t, app, "POST", "/admin/spam-feedback", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first report: expected 201, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/admin/spam-feedback", body)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second report: expected 409, got %d", resp.StatusCode)
	}

	var count int64
	db.DB.Model(&models.SpamFeedback{}).Where("feedback_id = ?", feedback[0].ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single report, found %d", count)
	}
}

func TestCreateSpamFeedbackValidation(t *testing.T) {
	setupTestDB(t)
	admin, _ := seedFeedback(t)
	app := newTestApp(admin.ID)

	resp, _ := doJSON(t, app, "POST", "/admin/spam-feedback", `{"reason": "spam"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("missing feedback id: expected 400, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/admin/spam-feedback", `{"feedback_id": 1}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("missing reason: expected 400, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/admin/spam-feedback", `{"feedback_id": 999, "reason": "spam"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown feedback: expected 404, got %d", resp.StatusCode)
	}
}

func TestGetFeedbackExcludesReported(t *testing.T) {
	setupTestDB(t)
	admin, feedback := seedFeedback(t)
	app := newTestApp(admin.ID)

	// feedback[0]: pending report, feedback[1]: resolved, feedback[2]:
	// dismissed, feedback[3]: unreported.
	reports := []models.SpamFeedback{
		{FeedbackID: feedback[0].ID, ReportedByID: admin.ID, Reason: "spam", Status: models.SpamPending},
		{FeedbackID: feedback[1].ID, ReportedByID: admin.ID, Reason: "spam", Status: models.SpamResolved},
		{FeedbackID: feedback[2].ID, ReportedByID: admin.ID, Reason: "spam", Status: models.SpamDismissed},
	}
	for i := range reports {
		if err := db.DB.Create(&reports[i]).Error; err != nil {
			t.Fatalf("failed to seed spam report: %v", err)
		}
	}

	resp, body := doJSON(t, app, "GET", "/admin/feedback", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	items, _ := body["feedback"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 visible feedback items, got %d", len(items))
	}
	visible := map[float64]bool{}
	for _, item := range items {
		m, _ := item.(map[string]interface{})
		visible[m["ID"].(float64)] = true
	}
	if visible[float64(feedback[0].ID)] {
		t.Errorf("feedback with pending report should be hidden")
	}
	if visible[float64(feedback[1].ID)] {
		t.Errorf("feedback with resolved report should be hidden")
	}
	if !visible[float64(feedback[2].ID)] {
		t.Errorf("feedback with dismissed report should be visible")
	}
	if !visible[float64(feedback[3].ID)] {
		t.Errorf("unreported feedback should be visible")
	}
	if body["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", body["total"])
	}
}

func TestResolveSpamFeedback(t *testing.T) {
	setupTestDB(t)
	admin, feedback := seedFeedback(t)
	app := newTestApp(admin.ID)

	report := models.SpamFeedback{FeedbackID: feedback[0].ID, ReportedByID: admin.ID, Reason: "spam"}
	if err := db.DB.Create(&report).Error; err != nil {
		t.Fatalf("failed to seed spam report: %v", err)
	}

	resp, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/admin/spam-feedback/%d/resolve", report.ID),
		`{"status": "Dismissed", "resolution": "not spam"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reloaded models.SpamFeedback
	db.DB.First(&reloaded, report.ID)
	if reloaded.Status != models.SpamDismissed {
		t.Errorf("expected status Dismissed, got %s", reloaded.Status)
	}
	if reloaded.Resolution != "not spam" {
		t.Errorf("expected resolution recorded, got %q", reloaded.Resolution)
	}

	// Dismissing makes the underlying feedback visible again.
	resp, body := doJSON(t, app, "GET", "/admin/feedback", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["total"] != float64(4) {
		t.Errorf("expected all feedback visible after dismissal, got total %v", body["total"])
	}
}

func TestResolveSpamFeedbackInvalidStatus(t *testing.T) {
	setupTestDB(t)
	admin, feedback := seedFeedback(t)
	app := newTestApp(admin.ID)

	report := models.SpamFeedback{FeedbackID: feedback[0].ID, ReportedByID: admin.ID, Reason: "spam"}
	if err := db.DB.Create(&report).Error; err != nil {
		t.Fatalf("failed to seed spam report: %v", err)
	}

	resp, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/admin/spam-feedback/%d/resolve", report.ID),
		`{"status": "Closed"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestModerateFeedback(t *testing.T) {
	setupTestDB(t)
	admin, feedback := seedFeedback(t)
	app := newTestApp(admin.ID)

	resp, _ := doJSON(t, app, "PATCH", fmt.Sprintf("/admin/feedback/%d/moderate", feedback[0].ID),
		`{"is_moderated": true}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reloaded models.Feedback
	db.DB.First(&reloaded, feedback[0].ID)
	if !reloaded.IsModerated {
		t.Errorf("expected feedback to be marked moderated")
	}
}
