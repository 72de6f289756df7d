package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/models"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DocumentHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewDocumentHandler(db *gorm.DB, adminService *services.AdminService) *DocumentHandler {
	return &DocumentHandler{db: db, adminService: adminService}
}

// ListDocuments returns compliance documents filtered by category
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	limit, offset := pageParams(c, 20)

	query := h.db.Model(&models.Document{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}

	var items []models.Document
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}

	respondPage(c, items, NewPagination(limit, offset, total))
}

// GetDocument returns a single document record
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	var item models.Document
	if err := h.db.Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Document not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	respondOK(c, item)
}

// CreateDocument registers a document (admin only)
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Category    string `json:"category" binding:"required"`
		Description string `json:"description"`
		FileURL     string `json:"file_url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Document{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		FileURL:     req.FileURL,
	}

	if err := h.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create document: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create document")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "CREATE_DOCUMENT", "DOCUMENT", &item.ID, nil)
	}

	respondCreated(c, item)
}

// UpdateDocument updates a document record (admin only)
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid document ID")
		return
	}

	var item models.Document
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Document not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
		FileURL     *string `json:"file_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.FileURL != nil {
		updates["file_url"] = *req.FileURL
	}

	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update document %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update document")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_DOCUMENT", "DOCUMENT", &item.ID, nil)
	}

	respondOK(c, item)
}

// DeleteDocument removes a document record (admin only)
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid document ID")
		return
	}

	result := h.db.Delete(&models.Document{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete document %d: %v", id, result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Document not found")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		dID := uint(id)
		h.adminService.LogAdminAction(adminID, "DELETE_DOCUMENT", "DOCUMENT", &dID, nil)
	}

	respondMessage(c, "Document deleted")
}
