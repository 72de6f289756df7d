package handlers

import (
	"net/http"
	"time"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type KeepaliveHandler struct {
	db *gorm.DB
}

func NewKeepaliveHandler(db *gorm.DB) *KeepaliveHandler {
	return &KeepaliveHandler{db: db}
}

// Ping issues a cheap count against several tables so the hosted database
// never idles, and reports which probes succeeded
func (h *KeepaliveHandler) Ping(c *gin.Context) {
	probes := []struct {
		name  string
		model interface{}
	}{
		{"reference_numbers", &models.ReferenceNumber{}},
		{"registrations", &models.Registration{}},
		{"news", &models.News{}},
		{"events", &models.Event{}},
	}

	statuses := make(map[string]string, len(probes))
	healthy := true

	for _, probe := range probes {
		var n int64
		if err := h.db.Model(probe.model).Count(&n).Error; err != nil {
			statuses[probe.name] = "error"
			healthy = false
			continue
		}
		statuses[probe.name] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"success": healthy,
		"data": gin.H{
			"tables": statuses,
			"time":   time.Now().Format(time.RFC3339),
		},
	})
}
