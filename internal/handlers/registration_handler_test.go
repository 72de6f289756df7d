package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/repository"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.ReferenceNumber{},
		&models.Registration{},
		&models.SiteSetting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	repo := repository.NewRepository(db)
	service := services.NewRegistrationService(repo, 30)
	handler := NewRegistrationHandler(service)

	router := gin.New()
	router.POST("/api/registration/step1", handler.IssueReferenceNumber)
	router.GET("/api/registration/step1", handler.GetReferenceNumber)
	router.POST("/api/registration/step2", handler.SubmitRegistration)
	router.GET("/api/registration/step2", handler.GetRegistrationStatus)

	return router
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}

	return w, env
}

func TestRegistrationFlowEndToEnd(t *testing.T) {
	router := setupRouter(t)

	// Step 1: issue a reference number
	w, env := doJSON(t, router, http.MethodPost, "/api/registration/step1", map[string]interface{}{
		"full_name": "Jane Doe",
		"email":     "jane@example.com",
	})
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("step1 failed: status=%d body=%s", w.Code, w.Body.String())
	}

	code, _ := env.Data["reference_number"].(string)
	if code == "" {
		t.Fatal("step1 response missing reference_number")
	}

	// Step 1 read: prefill details
	w, env = doJSON(t, router, http.MethodGet, "/api/registration/step1?reference_number="+code, nil)
	if w.Code != http.StatusOK || env.Data["full_name"] != "Jane Doe" {
		t.Fatalf("step1 lookup failed: status=%d body=%s", w.Code, w.Body.String())
	}

	form := map[string]interface{}{
		"reference_number": code,
		"full_name":        "Jane Doe",
		"email":            "jane@example.com",
		"phone":            "+60123456789",
		"date_of_birth":    "2000-04-12",
		"gender":           "female",
		"terms_accepted":   true,
		"privacy_accepted": true,
	}

	// Step 2: submit the registration
	w, env = doJSON(t, router, http.MethodPost, "/api/registration/step2", form)
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("step2 failed: status=%d body=%s", w.Code, w.Body.String())
	}
	if env.Data["status"] != "pending" {
		t.Errorf("expected pending status, got %v", env.Data["status"])
	}

	// Second submission with the same code is rejected
	w, env = doJSON(t, router, http.MethodPost, "/api/registration/step2", form)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on reuse, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error != "reference number has already been used" {
		t.Errorf("unexpected error message %q", env.Error)
	}

	// Status check
	w, env = doJSON(t, router, http.MethodGet, "/api/registration/step2?reference_number="+code, nil)
	if w.Code != http.StatusOK || env.Data["status"] != "pending" {
		t.Fatalf("status check failed: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestStep1Validation(t *testing.T) {
	router := setupRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/registration/step1", map[string]interface{}{
		"full_name": "Jane Doe",
	})
	if w.Code != http.StatusBadRequest || env.Success {
		t.Errorf("expected 400 for missing email, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/registration/step1", map[string]interface{}{
		"full_name": "Jane Doe",
		"email":     "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed email, got %d", w.Code)
	}
}

func TestStep2MissingFieldNamesField(t *testing.T) {
	router := setupRouter(t)

	_, env := doJSON(t, router, http.MethodPost, "/api/registration/step1", map[string]interface{}{
		"full_name": "Jane Doe",
		"email":     "jane@example.com",
	})
	code, _ := env.Data["reference_number"].(string)

	w, env := doJSON(t, router, http.MethodPost, "/api/registration/step2", map[string]interface{}{
		"reference_number": code,
		"full_name":        "Jane Doe",
		"email":            "jane@example.com",
		"date_of_birth":    "2000-04-12",
		"gender":           "female",
		"terms_accepted":   true,
		"privacy_accepted": true,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error != "phone is required" {
		t.Errorf("expected the missing field to be named, got %q", env.Error)
	}
}

func TestStep2UnknownCode(t *testing.T) {
	router := setupRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/registration/step2", map[string]interface{}{
		"reference_number": "SPF-2025-00000",
		"full_name":        "Jane Doe",
		"email":            "jane@example.com",
		"phone":            "+60123456789",
		"date_of_birth":    "2000-04-12",
		"gender":           "female",
		"terms_accepted":   true,
		"privacy_accepted": true,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", w.Code)
	}
	if env.Error != "invalid reference number" {
		t.Errorf("unexpected error message %q", env.Error)
	}
}
