package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the page descriptor attached to list responses
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination derives page numbers from a limit/offset query and a total
func NewPagination(limit, offset int, total int64) Pagination {
	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// respondOK writes a success envelope
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondCreated writes a success envelope with 201
func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondMessage writes a success envelope carrying only a message
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// respondPage writes a success envelope with pagination
func respondPage(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}

// respondError writes an error envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// pageParams reads limit/offset query parameters with defaults and caps
func pageParams(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
