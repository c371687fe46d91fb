package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tastebook/backend/internal/service"
)

// maxImageSize caps uploads at 5 MiB.
const maxImageSize = 5 << 20

type ImageHandler struct {
	storage service.ImageUploader
	logger  *zap.Logger
}

func NewImageHandler(storage service.ImageUploader, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{storage: storage, logger: logger}
}

func (h *ImageHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/images", h.Upload)
}

// Upload stores a recipe image and returns its public URL for use as the
// recipe's image_url.
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("image open failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		h.logger.Error("image read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.storage.Upload(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
