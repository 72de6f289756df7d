package repository

import (
	"context"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for transaction composition
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// CreateReferenceNumber creates a new reference number row
func (r *Repository) CreateReferenceNumber(ctx context.Context, ref *models.ReferenceNumber) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

// GetReferenceNumberByCode retrieves a reference number by its code
func (r *Repository) GetReferenceNumberByCode(ctx context.Context, code string) (*models.ReferenceNumber, error) {
	var ref models.ReferenceNumber
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// ConsumeReferenceNumber marks a code used with a conditional update so
// two racing submissions cannot both consume it. Returns the number of
// rows changed: 1 when this caller won, 0 when the code was already used.
func (r *Repository) ConsumeReferenceNumber(tx *gorm.DB, code string, usedAt time.Time) (int64, error) {
	result := tx.Model(&models.ReferenceNumber{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": usedAt,
		})
	return result.RowsAffected, result.Error
}

// CreateRegistration inserts a new registration row
func (r *Repository) CreateRegistration(tx *gorm.DB, reg *models.Registration) error {
	return tx.Create(reg).Error
}

// GetRegistrationByCode retrieves a registration by its reference code
func (r *Repository) GetRegistrationByCode(ctx context.Context, code string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).Where("reference_number = ?", code).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetRegistrationByID retrieves a registration by primary key
func (r *Repository) GetRegistrationByID(ctx context.Context, id uint) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// RegistrationWithHolder pairs a registration with the holder details from
// its reference number row
type RegistrationWithHolder struct {
	models.Registration
	HolderFullName string `json:"holder_full_name"`
	HolderEmail    string `json:"holder_email"`
}

// ListRegistrationsWithHolder retrieves registrations joined with holder
// name/email, newest-submitted first, with an optional status filter,
// returning the page and the filtered total
func (r *Repository) ListRegistrationsWithHolder(
	ctx context.Context,
	status string,
	limit int,
	offset int,
) ([]RegistrationWithHolder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Registration{}).
		Select("registrations.*, reference_numbers.full_name AS holder_full_name, reference_numbers.email AS holder_email").
		Joins("LEFT JOIN reference_numbers ON reference_numbers.code = registrations.reference_number")

	if status != "" {
		query = query.Where("registrations.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []RegistrationWithHolder
	err := query.
		Order("registrations.submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// UpdateRegistrationStatus applies review updates only while the row is
// still in fromStatus. Returns the number of rows changed: 1 when this
// caller's decision landed, 0 when a concurrent decision got there first.
func (r *Repository) UpdateRegistrationStatus(ctx context.Context, id uint, fromStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountRegistrationsByStatus returns registration counts grouped by status
func (r *Repository) CountRegistrationsByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&models.Registration{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
