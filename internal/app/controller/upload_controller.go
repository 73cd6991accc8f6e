package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcalhoun/summit-backend/internal/errors"
	"github.com/rcalhoun/summit-backend/internal/middleware"
	"github.com/rcalhoun/summit-backend/internal/storage"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3Storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3Storage,
	}
}

type PresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// GetPresignedURL issues a pre-signed S3 PUT URL for a product image
// POST /api/v1/uploads/presigned (admin)
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only JPEG, PNG, and WebP images are allowed")
		return
	}

	resp, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, "products")
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, resp)
}
