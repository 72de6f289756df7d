package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db: db,
	}
}

// Authenticate checks admin credentials and returns the account on success
func (s *AdminService) Authenticate(email, password string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// GetAdminByID gets an admin account by id
func (s *AdminService) GetAdminByID(adminID uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// EnsureBootstrapAdmin creates the initial admin account from config when
// no admin exists yet. Called once at startup.
func (s *AdminService) EnsureBootstrapAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin := models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         "SUPER_ADMIN",
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Bootstrap admin %s created", email)
	return nil
}

// LogAdminAction records an admin action in the audit log
func (s *AdminService) LogAdminAction(adminID uint, action, entityType string, entityID *uint, details map[string]interface{}) {
	logEntry := models.AdminLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}

	if err := s.db.Create(&logEntry).Error; err != nil {
		log.Printf("Failed to log admin action %s: %v", action, err)
	}
}

// GetAdminLogs returns admin activity logs, newest first
func (s *AdminService) GetAdminLogs(limit, offset int) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	if err := s.db.Preload("Admin").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// DashboardCounts holds the entity totals shown on the admin dashboard
type DashboardCounts struct {
	Registrations int64 `json:"registrations"`
	News          int64 `json:"news"`
	Events        int64 `json:"events"`
	Results       int64 `json:"results"`
	Members       int64 `json:"members"`
	Documents     int64 `json:"documents"`
}

// GetDashboardCounts tallies the main content tables
func (s *AdminService) GetDashboardCounts() (*DashboardCounts, error) {
	counts := DashboardCounts{}

	tables := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Registration{}, &counts.Registrations},
		{&models.News{}, &counts.News},
		{&models.Event{}, &counts.Events},
		{&models.Result{}, &counts.Results},
		{&models.Member{}, &counts.Members},
		{&models.Document{}, &counts.Documents},
	}

	for _, t := range tables {
		if err := s.db.Model(t.model).Count(t.dest).Error; err != nil {
			return nil, err
		}
	}

	return &counts, nil
}
