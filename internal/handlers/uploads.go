package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// limitUploads caps the request body before multipart parsing.
func limitUploads(c *gin.Context, maxBytes int64) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
}

// openUpload opens a multipart file field and returns it with its client-side name.
// It answers 413 or 400 itself when it cannot.
func openUpload(c *gin.Context, logger *slog.Logger, field string, maxBytes int64) (multipart.File, string, bool) {
	limitUploads(c, maxBytes)
	header, err := c.FormFile(field)
	if err != nil {
		respondUploadError(c, logger, field, err)
		return nil, "", false
	}
	f, err := header.Open()
	if err != nil {
		logger.Error("Failed to open upload", slog.String("field", field), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return nil, "", false
	}
	return f, header.Filename, true
}

func respondUploadError(c *gin.Context, logger *slog.Logger, field string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warn("Upload too large", slog.Int64("limit", tooLarge.Limit))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload exceeds the size limit"})
		return
	}
	logger.Warn("Missing upload", slog.String("field", field), slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "File field '" + field + "' is required"})
}
