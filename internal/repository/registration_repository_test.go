package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) *Repository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.ReferenceNumber{}, &models.Registration{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return NewRepository(db)
}

func seedPair(t *testing.T, repo *Repository, i int, status string, submittedAt time.Time) *models.Registration {
	code := fmt.Sprintf("SPF-2025-%05d", i)

	ref := models.ReferenceNumber{
		Code:      code,
		FullName:  fmt.Sprintf("Player %d", i),
		Email:     fmt.Sprintf("player%d@example.com", i),
		Used:      true,
		ExpiresAt: time.Now().AddDate(0, 1, 0),
	}
	if err := repo.DB().Create(&ref).Error; err != nil {
		t.Fatalf("failed to seed reference number: %v", err)
	}

	reg := models.Registration{
		ReferenceNumber: code,
		FullName:        ref.FullName,
		Email:           ref.Email,
		Phone:           "+60123456789",
		DateOfBirth:     "2000-01-01",
		Gender:          "male",
		TermsAccepted:   true,
		PrivacyAccepted: true,
		Status:          status,
		SubmittedAt:     submittedAt,
	}
	if err := repo.DB().Create(&reg).Error; err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	return &reg
}

func TestListRegistrationsWithHolder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	seedPair(t, repo, 1, models.RegistrationStatusPending, base)
	seedPair(t, repo, 2, models.RegistrationStatusApproved, base.Add(10*time.Minute))

	rows, total, err := repo.ListRegistrationsWithHolder(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("ListRegistrationsWithHolder failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 rows, got total=%d len=%d", total, len(rows))
	}
	if rows[0].ReferenceNumber != "SPF-2025-00002" {
		t.Errorf("expected newest submission first, got %s", rows[0].ReferenceNumber)
	}
	if rows[0].HolderFullName != "Player 2" || rows[0].HolderEmail != "player2@example.com" {
		t.Errorf("holder details not joined: %q %q", rows[0].HolderFullName, rows[0].HolderEmail)
	}

	rows, total, err = repo.ListRegistrationsWithHolder(ctx, models.RegistrationStatusPending, 10, 0)
	if err != nil {
		t.Fatalf("filtered ListRegistrationsWithHolder failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Status != models.RegistrationStatusPending {
		t.Errorf("status filter not applied: total=%d len=%d", total, len(rows))
	}
}

func TestUpdateRegistrationStatusGuard(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	reg := seedPair(t, repo, 1, models.RegistrationStatusPending, time.Now())

	now := time.Now()
	rows, err := repo.UpdateRegistrationStatus(ctx, reg.ID, models.RegistrationStatusPending, map[string]interface{}{
		"status":      models.RegistrationStatusApproved,
		"reviewed_at": now,
	})
	if err != nil {
		t.Fatalf("UpdateRegistrationStatus failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row changed, got %d", rows)
	}

	// A second decision made against the stale pending status must not land
	rows, err = repo.UpdateRegistrationStatus(ctx, reg.ID, models.RegistrationStatusPending, map[string]interface{}{
		"status":      models.RegistrationStatusRejected,
		"reviewed_at": now,
	})
	if err != nil {
		t.Fatalf("second UpdateRegistrationStatus failed: %v", err)
	}
	if rows != 0 {
		t.Errorf("expected 0 rows changed for stale status, got %d", rows)
	}

	var reloaded models.Registration
	if err := repo.DB().First(&reloaded, reg.ID).Error; err != nil {
		t.Fatalf("failed to reload registration: %v", err)
	}
	if reloaded.Status != models.RegistrationStatusApproved {
		t.Errorf("expected the first decision to stand, got %s", reloaded.Status)
	}
}
