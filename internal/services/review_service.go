package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrIllegalTransition    = errors.New("illegal status transition")
)

// allowedTransitions is the review state machine. Reviewed registrations
// never return to pending; approved and rejected are terminal.
var allowedTransitions = map[string][]string{
	models.RegistrationStatusPending: {
		models.RegistrationStatusApproved,
		models.RegistrationStatusRejected,
		models.RegistrationStatusUnderReview,
	},
	models.RegistrationStatusUnderReview: {
		models.RegistrationStatusApproved,
		models.RegistrationStatusRejected,
	},
	models.RegistrationStatusApproved: {},
	models.RegistrationStatusRejected: {},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ReviewService struct {
	repo *repository.Repository
}

func NewReviewService(repo *repository.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// ListRegistrations returns a page of registrations joined with holder
// name/email, newest-submitted first, optionally filtered by status
func (s *ReviewService) ListRegistrations(ctx context.Context, status string, limit, offset int) ([]repository.RegistrationWithHolder, int64, error) {
	if status != "" && !models.ValidRegistrationStatus(status) {
		return nil, 0, ErrInvalidStatus
	}

	return s.repo.ListRegistrationsWithHolder(ctx, status, limit, offset)
}

// GetRegistration returns a single registration by id
func (s *ReviewService) GetRegistration(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.repo.GetRegistrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

// UpdateStatusInput carries an admin review decision
type UpdateStatusInput struct {
	ID          uint    `json:"id"`
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
}

// UpdateStatus transitions a registration's review status, recording the
// reviewer and timestamp. Unknown statuses and transitions outside the
// state machine are rejected with nothing mutated.
func (s *ReviewService) UpdateStatus(ctx context.Context, in *UpdateStatusInput) (*models.Registration, error) {
	if !models.ValidRegistrationStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	reg, err := s.repo.GetRegistrationByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if !transitionAllowed(reg.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, reg.Status, in.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      in.Status,
		"reviewed_at": now,
	}
	if in.ReviewNotes != nil {
		updates["review_notes"] = *in.ReviewNotes
	}
	if in.ReviewedBy != nil {
		updates["reviewed_by"] = *in.ReviewedBy
	}

	// The write is conditioned on the status seen above so two concurrent
	// decisions cannot both land; the later one affects zero rows.
	rows, err := s.repo.UpdateRegistrationStatus(ctx, reg.ID, reg.Status, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: registration %d was reviewed concurrently", ErrIllegalTransition, reg.ID)
	}

	reg.Status = in.Status
	reg.ReviewedAt = &now
	if in.ReviewNotes != nil {
		reg.ReviewNotes = in.ReviewNotes
	}
	if in.ReviewedBy != nil {
		reg.ReviewedBy = in.ReviewedBy
	}

	log.Printf("Registration %d reviewed: %s", reg.ID, in.Status)
	return reg, nil
}

// Statistics returns registration counts per status plus the total
func (s *ReviewService) Statistics(ctx context.Context) (map[string]int64, int64, error) {
	counts, err := s.repo.CountRegistrationsByStatus(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Surface zero counts for statuses with no rows yet
	for _, status := range []string{
		models.RegistrationStatusPending,
		models.RegistrationStatusApproved,
		models.RegistrationStatusRejected,
		models.RegistrationStatusUnderReview,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return counts, total, nil
}
