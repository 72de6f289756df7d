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

type MemberHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewMemberHandler(db *gorm.DB, adminService *services.AdminService) *MemberHandler {
	return &MemberHandler{db: db, adminService: adminService}
}

// ListMembers returns the member directory with role/district filters
func (h *MemberHandler) ListMembers(c *gin.Context) {
	role := c.Query("role")
	district := c.Query("district")
	search := c.Query("search")
	limit, offset := pageParams(c, 50)

	query := h.db.Model(&models.Member{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name ILIKE ? OR district ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	var items []models.Member
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	respondPage(c, items, NewPagination(limit, offset, total))
}

// GetMember returns a single directory entry
func (h *MemberHandler) GetMember(c *gin.Context) {
	id := c.Param("id")

	var item models.Member
	if err := h.db.Where("id = ?", id).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Member not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch member")
		return
	}

	respondOK(c, item)
}

// CreateMember adds a directory entry (admin only)
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Role     string `json:"role" binding:"required"`
		District string `json:"district"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		PhotoURL string `json:"photo_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.Member{
		Name:     req.Name,
		Role:     req.Role,
		District: req.District,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
	}

	if err := h.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create member: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create member")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "CREATE_MEMBER", "MEMBER", &item.ID, nil)
	}

	respondCreated(c, item)
}

// UpdateMember updates a directory entry (admin only)
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid member ID")
		return
	}

	var item models.Member
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Member not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch member")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Role     *string `json:"role"`
		District *string `json:"district"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		PhotoURL *string `json:"photo_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.District != nil {
		updates["district"] = *req.District
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}

	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update member %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		h.adminService.LogAdminAction(adminID, "UPDATE_MEMBER", "MEMBER", &item.ID, nil)
	}

	respondOK(c, item)
}

// DeleteMember removes a directory entry (admin only)
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid member ID")
		return
	}

	result := h.db.Delete(&models.Member{}, id)
	if result.Error != nil {
		log.Printf("Failed to delete member %d: %v", id, result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete member")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Member not found")
		return
	}

	if adminID, ok := auth.GetAdminID(c); ok {
		mID := uint(id)
		h.adminService.LogAdminAction(adminID, "DELETE_MEMBER", "MEMBER", &mID, nil)
	}

	respondMessage(c, "Member deleted")
}
