package jobs

import (
	"log"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"gorm.io/gorm"
)

// KeepaliveJob periodically pings a few tables so a hosted database with an
// idle-pause policy stays warm.
type KeepaliveJob struct {
	db *gorm.DB
}

func NewKeepaliveJob(db *gorm.DB) *KeepaliveJob {
	return &KeepaliveJob{db: db}
}

// Start begins the periodic keepalive probe
func (j *KeepaliveJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		j.ping()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			j.ping()
		}
	}()
}

func (j *KeepaliveJob) ping() {
	probes := []interface{}{
		&models.ReferenceNumber{},
		&models.Registration{},
		&models.News{},
	}

	for _, probe := range probes {
		var n int64
		if err := j.db.Model(probe).Count(&n).Error; err != nil {
			log.Printf("Keepalive probe failed for %T: %v", probe, err)
		}
	}
}
