package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedUploadExtensions limits uploads to image and document types used
// by the admin forms
var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

const maxUploadSize = 10 << 20 // 10 MB

type UploadHandler struct {
	uploadDir string
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// Upload stores a multipart file under a random name and returns its
// public URL
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file field is required")
		return
	}

	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "file exceeds the 10 MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("file type %s is not allowed", ext))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Failed to create upload dir: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to store file")
		return
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.Printf("Failed to save uploaded file: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to store file")
		return
	}

	respondCreated(c, gin.H{
		"filename":      filename,
		"original_name": file.Filename,
		"size":          file.Size,
		"url":           "/uploads/" + filename,
	})
}
