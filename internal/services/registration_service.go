package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/repository"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business-rule errors surfaced to the caller as 400-class responses
var (
	ErrInvalidReferenceNumber = errors.New("invalid reference number")
	ErrReferenceNumberUsed    = errors.New("reference number has already been used")
	ErrReferenceNumberExpired = errors.New("reference number has expired")
)

// ValidationError marks a client-correctable input problem. Handlers map it
// to a 400 response with the message shown verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, a ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, a...)}
}

const codeGenerationRetries = 5

type RegistrationService struct {
	repo         *repository.Repository
	validityDays int
}

func NewRegistrationService(repo *repository.Repository, validityDays int) *RegistrationService {
	if validityDays <= 0 {
		validityDays = 30
	}
	return &RegistrationService{
		repo:         repo,
		validityDays: validityDays,
	}
}

// IssueReferenceNumber generates a unique reference code for the given
// applicant and persists it unused with an expiry. Repeat calls by the same
// person mint additional codes; no dedup is performed.
func (s *RegistrationService) IssueReferenceNumber(ctx context.Context, fullName, email string) (*models.ReferenceNumber, error) {
	if fullName == "" {
		return nil, validationErrorf("full_name is required")
	}
	if email == "" {
		return nil, validationErrorf("email is required")
	}

	now := time.Now()

	// The unique index on code is the source of truth for uniqueness;
	// regenerate on collision.
	for attempt := 0; attempt < codeGenerationRetries; attempt++ {
		code, err := utils.GenerateReferenceCode(now)
		if err != nil {
			return nil, err
		}

		ref := models.ReferenceNumber{
			Code:      code,
			FullName:  fullName,
			Email:     email,
			Used:      false,
			ExpiresAt: now.AddDate(0, 0, s.validityDays),
		}

		err = s.repo.CreateReferenceNumber(ctx, &ref)
		if err == nil {
			log.Printf("Issued reference number %s for %s", code, email)
			return &ref, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, fmt.Errorf("failed to create reference number: %w", err)
	}

	return nil, fmt.Errorf("failed to generate a unique reference number after %d attempts", codeGenerationRetries)
}

// LookupReferenceNumber returns the reference number for a code, rejecting
// unknown, used and expired codes. Used by Step 2 to prefill holder details.
func (s *RegistrationService) LookupReferenceNumber(ctx context.Context, code string) (*models.ReferenceNumber, error) {
	ref, err := s.repo.GetReferenceNumberByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferenceNumber
		}
		return nil, err
	}

	if ref.Used {
		return nil, ErrReferenceNumberUsed
	}
	if ref.IsExpired(time.Now()) {
		return nil, ErrReferenceNumberExpired
	}

	return ref, nil
}

// SubmitRegistrationInput carries the full Step 2 applicant form
type SubmitRegistrationInput struct {
	ReferenceNumber string `json:"reference_number"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"date_of_birth"`
	Gender          string `json:"gender"`

	Address         string `json:"address"`
	City            string `json:"city"`
	PlayingPosition string `json:"playing_position"`
	ExperienceYears int    `json:"experience_years"`
	PreviousClub    string `json:"previous_club"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	TermsAccepted   bool `json:"terms_accepted"`
	PrivacyAccepted bool `json:"privacy_accepted"`
}

// validateApplicant checks required fields in a stable order and names the
// first missing one
func validateApplicant(in *SubmitRegistrationInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"date_of_birth", in.DateOfBirth},
		{"gender", in.Gender},
	}

	for _, field := range required {
		if field.value == "" {
			return validationErrorf("%s is required", field.name)
		}
	}

	if !in.TermsAccepted {
		return validationErrorf("terms_accepted must be true")
	}
	if !in.PrivacyAccepted {
		return validationErrorf("privacy_accepted must be true")
	}

	return nil
}

// SubmitRegistration validates a Step 2 submission and records it. The code
// lookup rejections short-circuit in order: unknown, used, expired, then
// missing applicant fields. The registration insert and the mark-used update
// run in a single transaction; the conditional update is checked for
// affected rows so two racing submissions cannot both consume one code.
func (s *RegistrationService) SubmitRegistration(ctx context.Context, in *SubmitRegistrationInput) (*models.Registration, error) {
	if in.ReferenceNumber == "" {
		return nil, validationErrorf("reference_number is required")
	}

	ref, err := s.repo.GetReferenceNumberByCode(ctx, in.ReferenceNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferenceNumber
		}
		return nil, err
	}

	if ref.Used {
		return nil, ErrReferenceNumberUsed
	}
	if ref.IsExpired(time.Now()) {
		return nil, ErrReferenceNumberExpired
	}

	if err := validateApplicant(in); err != nil {
		return nil, err
	}

	fee, err := s.currentRegistrationFee(ctx)
	if err != nil {
		return nil, err
	}

	reg := models.Registration{
		ReferenceNumber: in.ReferenceNumber,
		FullName:        in.FullName,
		Email:           in.Email,
		Phone:           in.Phone,
		DateOfBirth:     in.DateOfBirth,
		Gender:          in.Gender,

		Address:         in.Address,
		City:            in.City,
		PlayingPosition: in.PlayingPosition,
		ExperienceYears: in.ExperienceYears,
		PreviousClub:    in.PreviousClub,

		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,

		TermsAccepted:   in.TermsAccepted,
		PrivacyAccepted: in.PrivacyAccepted,

		FeeAmount:   fee,
		Status:      models.RegistrationStatusPending,
		SubmittedAt: time.Now(),
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.repo.ConsumeReferenceNumber(tx, in.ReferenceNumber, time.Now())
		if err != nil {
			return fmt.Errorf("failed to consume reference number: %w", err)
		}
		if rows == 0 {
			// Lost the race to a concurrent submission
			return ErrReferenceNumberUsed
		}

		if err := s.repo.CreateRegistration(tx, &reg); err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Printf("Registration %d recorded for reference number %s", reg.ID, reg.ReferenceNumber)
	return &reg, nil
}

// GetRegistrationStatus returns the public status fields of a registration
// looked up by reference code. No authentication is required; this is a
// low-friction status-check surface, not a security boundary.
func (s *RegistrationService) GetRegistrationStatus(ctx context.Context, code string) (*models.Registration, error) {
	if code == "" {
		return nil, validationErrorf("reference_number is required")
	}

	reg, err := s.repo.GetRegistrationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferenceNumber
		}
		return nil, err
	}

	return reg, nil
}

// currentRegistrationFee reads the configured fee from site settings. A
// missing settings row means no fee has been configured yet; any other
// error fails the caller rather than snapshotting a bogus zero.
func (s *RegistrationService) currentRegistrationFee(ctx context.Context) (decimal.Decimal, error) {
	var setting models.SiteSetting
	if err := s.repo.DB().WithContext(ctx).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read registration fee: %w", err)
	}
	return setting.RegistrationFee, nil
}
