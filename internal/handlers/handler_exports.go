package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/posync/internal/core/domain"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"

	recordsWorkbook    = "records.xlsx"
	reconciliationFile = "reconciliation.pdf"
)

// exportHandler serves downloads and the workbook import.
type exportHandler struct {
	exportService  portssvc.ExportSvc
	maxUploadBytes int64
}

func newExportHandler(es portssvc.ExportSvc, maxUploadBytes int64) *exportHandler {
	return &exportHandler{exportService: es, maxUploadBytes: maxUploadBytes}
}

func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvc, maxUploadBytes int64, uploadLimit gin.HandlerFunc) {
	h := newExportHandler(exportService, maxUploadBytes)

	rg.GET("/exports/:file", h.download)
	rg.POST("/imports/records", uploadLimit, h.importRecords)
}

// download godoc
// @Summary Download records or the reconciliation document
// @Description records.xlsx holds every category; <category>.xlsx holds one (e.g. deposits.xlsx); reconciliation.pdf is the two-page summary
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param X-Session-ID header string true "Session ID"
// @Param file path string true "records.xlsx, <category>.xlsx or reconciliation.pdf"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Unknown export"
// @Failure 500 {object} map[string]string "Failed to export"
// @Router /exports/{file} [get]
func (h *exportHandler) download(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}
	file := c.Param("file")
	ctx := c.Request.Context()

	var (
		buf         bytes.Buffer
		err         error
		contentType = xlsxContentType
	)
	switch {
	case file == recordsWorkbook:
		err = h.exportService.ExportRecords(ctx, sessionID, &buf)
	case file == reconciliationFile:
		contentType = pdfContentType
		err = h.exportService.ExportReconciliationPDF(ctx, sessionID, &buf)
	case strings.HasSuffix(file, ".xlsx"):
		var category domain.Category
		category, err = domain.ParseCategory(strings.TrimSuffix(file, ".xlsx"))
		if err == nil {
			err = h.exportService.ExportCategory(ctx, sessionID, category, &buf)
		}
	default:
		logger.Warn("Unknown export requested", slog.String("file", file))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export: " + file})
		return
	}
	if err != nil {
		respondError(c, logger, err, "export "+file)
		return
	}

	logger.Info("Export generated", slog.String("file", file), slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// importRecords godoc
// @Summary Restore records from a workbook
// @Description Replaces every record of the session with the contents of a workbook produced by the records export. A workbook that cannot be parsed leaves the session unchanged.
// @Tags exports
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param file formData file true "records.xlsx"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string "Missing file or validation error"
// @Failure 422 {object} map[string]string "Malformed workbook"
// @Router /imports/records [post]
func (h *exportHandler) importRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}
	upload, _, ok := openUpload(c, logger, "file", h.maxUploadBytes)
	if !ok {
		return
	}
	defer upload.Close()

	snap, err := h.exportService.ImportRecords(c.Request.Context(), sessionID, upload)
	if err != nil {
		respondError(c, logger, err, "import records")
		return
	}
	c.JSON(http.StatusOK, dto.ToImportResponse(snap))
}
