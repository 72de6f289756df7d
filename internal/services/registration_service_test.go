package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// A named shared-cache memory DB keeps the schema visible across the
	// connections in gorm's pool. Each test gets its own database.
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

	return db
}

func validSubmission(code string) *SubmitRegistrationInput {
	return &SubmitRegistrationInput{
		ReferenceNumber: code,
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+60123456789",
		DateOfBirth:     "2000-04-12",
		Gender:          "female",
		PlayingPosition: "striker",
		TermsAccepted:   true,
		PrivacyAccepted: true,
	}
}

func TestIssueReferenceNumber(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	before := time.Now()
	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	pattern := regexp.MustCompile(`^SPF-\d{4}-\d{5}$`)
	if !pattern.MatchString(ref.Code) {
		t.Errorf("code %q does not match the federation format", ref.Code)
	}
	if ref.Used {
		t.Error("freshly issued code must be unused")
	}
	if !ref.ExpiresAt.After(before) {
		t.Errorf("expiry %v must be strictly after issuance", ref.ExpiresAt)
	}

	// No dedup: the same person can mint a second code
	ref2, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("second IssueReferenceNumber failed: %v", err)
	}
	if ref2.Code == ref.Code {
		t.Error("expected a distinct code on repeat issuance")
	}
}

func TestIssueReferenceNumberValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	if _, err := service.IssueReferenceNumber(ctx, "", "jane@example.com"); err == nil {
		t.Error("expected error for missing full_name")
	}
	if _, err := service.IssueReferenceNumber(ctx, "Jane Doe", ""); err == nil {
		t.Error("expected error for missing email")
	}

	var count int64
	db.Model(&models.ReferenceNumber{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no rows persisted on validation failure, got %d", count)
	}
}

func TestSubmitRegistration(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	reg, err := service.SubmitRegistration(ctx, validSubmission(ref.Code))
	if err != nil {
		t.Fatalf("SubmitRegistration failed: %v", err)
	}

	if reg.Status != models.RegistrationStatusPending {
		t.Errorf("expected status pending, got %s", reg.Status)
	}
	if reg.ReferenceNumber != ref.Code {
		t.Errorf("expected reference number %s, got %s", ref.Code, reg.ReferenceNumber)
	}

	// The code must now be consumed
	var consumed models.ReferenceNumber
	if err := db.Where("code = ?", ref.Code).First(&consumed).Error; err != nil {
		t.Fatalf("failed to reload reference number: %v", err)
	}
	if !consumed.Used || consumed.UsedAt == nil {
		t.Error("reference number was not marked used")
	}
}

func TestSubmitRegistrationFeeSnapshot(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	fee := decimal.NewFromInt(50)
	if err := db.Create(&models.SiteSetting{FederationName: "Test Federation", RegistrationFee: fee}).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	reg, err := service.SubmitRegistration(ctx, validSubmission(ref.Code))
	if err != nil {
		t.Fatalf("SubmitRegistration failed: %v", err)
	}
	if !reg.FeeAmount.Equal(fee) {
		t.Errorf("expected fee %s snapshotted, got %s", fee, reg.FeeAmount)
	}
}

func TestSubmitRegistrationSettingsFailure(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	// A broken settings table is an infra failure, not a missing row; the
	// submission must fail instead of recording a zero fee.
	if err := db.Migrator().DropTable(&models.SiteSetting{}); err != nil {
		t.Fatalf("failed to drop settings table: %v", err)
	}

	_, err = service.SubmitRegistration(ctx, validSubmission(ref.Code))
	if err == nil {
		t.Fatal("expected submission to fail when the fee cannot be read")
	}

	// The code stays unconsumed for a retry
	var reloaded models.ReferenceNumber
	if err := db.Where("code = ?", ref.Code).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload reference number: %v", err)
	}
	if reloaded.Used {
		t.Error("code consumed despite failed submission")
	}
}

func TestSubmitRegistrationConsumesCodeOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	if _, err := service.SubmitRegistration(ctx, validSubmission(ref.Code)); err != nil {
		t.Fatalf("first SubmitRegistration failed: %v", err)
	}

	_, err = service.SubmitRegistration(ctx, validSubmission(ref.Code))
	if !errors.Is(err, ErrReferenceNumberUsed) {
		t.Errorf("expected ErrReferenceNumberUsed on second submission, got %v", err)
	}

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one registration, got %d", count)
	}
}

func TestSubmitRegistrationRaceLosesConditionalUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	service := NewRegistrationService(repo, 30)
	ctx := context.Background()

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}

	// Simulate a concurrent submission landing between this caller's read
	// and its transaction: the code is consumed out from under it.
	rows, err := repo.ConsumeReferenceNumber(db, ref.Code, time.Now())
	if err != nil || rows != 1 {
		t.Fatalf("failed to consume code out of band: rows=%d err=%v", rows, err)
	}

	_, err = service.SubmitRegistration(ctx, validSubmission(ref.Code))
	if !errors.Is(err, ErrReferenceNumberUsed) {
		t.Errorf("expected ErrReferenceNumberUsed when losing the race, got %v", err)
	}

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no registration after losing the race, got %d", count)
	}
}

func TestSubmitRegistrationExpiredCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	expired := models.ReferenceNumber{
		Code:      "SPF-2024-00001",
		FullName:  "Jane Doe",
		Email:     "jane@example.com",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to seed expired code: %v", err)
	}

	_, err := service.SubmitRegistration(ctx, validSubmission(expired.Code))
	if !errors.Is(err, ErrReferenceNumberExpired) {
		t.Errorf("expected ErrReferenceNumberExpired, got %v", err)
	}
}

func TestSubmitRegistrationUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)

	_, err := service.SubmitRegistration(context.Background(), validSubmission("SPF-2025-99999"))
	if !errors.Is(err, ErrInvalidReferenceNumber) {
		t.Errorf("expected ErrInvalidReferenceNumber, got %v", err)
	}
}

func TestSubmitRegistrationMissingFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SubmitRegistrationInput)
	}{
		{"phone", func(in *SubmitRegistrationInput) { in.Phone = "" }},
		{"date_of_birth", func(in *SubmitRegistrationInput) { in.DateOfBirth = "" }},
		{"gender", func(in *SubmitRegistrationInput) { in.Gender = "" }},
		{"terms_accepted", func(in *SubmitRegistrationInput) { in.TermsAccepted = false }},
		{"privacy_accepted", func(in *SubmitRegistrationInput) { in.PrivacyAccepted = false }},
	}

	for _, tc := range cases {
		ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
		if err != nil {
			t.Fatalf("IssueReferenceNumber failed: %v", err)
		}

		in := validSubmission(ref.Code)
		tc.mutate(in)

		_, err = service.SubmitRegistration(ctx, in)
		if err == nil {
			t.Errorf("%s: expected rejection", tc.name)
			continue
		}

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}

		// The code must remain usable and no registration row written
		var reloaded models.ReferenceNumber
		db.Where("code = ?", ref.Code).First(&reloaded)
		if reloaded.Used {
			t.Errorf("%s: code consumed despite rejected submission", tc.name)
		}
	}

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no registrations written, got %d", count)
	}
}

func TestGetRegistrationStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewRegistrationService(repository.NewRepository(db), 30)
	ctx := context.Background()

	ref, err := service.IssueReferenceNumber(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("IssueReferenceNumber failed: %v", err)
	}
	if _, err := service.SubmitRegistration(ctx, validSubmission(ref.Code)); err != nil {
		t.Fatalf("SubmitRegistration failed: %v", err)
	}

	reg, err := service.GetRegistrationStatus(ctx, ref.Code)
	if err != nil {
		t.Fatalf("GetRegistrationStatus failed: %v", err)
	}
	if reg.Status != models.RegistrationStatusPending {
		t.Errorf("expected pending, got %s", reg.Status)
	}

	if _, err := service.GetRegistrationStatus(ctx, "SPF-2025-00000"); !errors.Is(err, ErrInvalidReferenceNumber) {
		t.Errorf("expected ErrInvalidReferenceNumber for unknown code, got %v", err)
	}
}
