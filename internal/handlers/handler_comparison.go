package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/posync/internal/comparison"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// comparisonHandler diffs a column of two uploaded spreadsheets.
type comparisonHandler struct {
	comparisonService portssvc.ComparisonSvc
	maxUploadBytes    int64
}

func newComparisonHandler(cs portssvc.ComparisonSvc, maxUploadBytes int64) *comparisonHandler {
	return &comparisonHandler{comparisonService: cs, maxUploadBytes: maxUploadBytes}
}

func registerComparisonRoutes(rg *gin.RouterGroup, comparisonService portssvc.ComparisonSvc, maxUploadBytes int64, uploadLimit gin.HandlerFunc) {
	h := newComparisonHandler(comparisonService, maxUploadBytes)

	comparisons := rg.Group("/comparisons", uploadLimit)
	{
		comparisons.POST("", h.compare)
		comparisons.POST("/columns", h.columns)
	}
}

// compare godoc
// @Summary Compare a column of two spreadsheets
// @Description Loads two .csv or .xlsx files and reports the values of column1 missing from column2 and vice versa, with the full mismatched rows of each file. filter_column1/filter_values1 (and the 2 variants) narrow a file before comparing; repeat filter_values for several values.
// @Tags comparisons
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param file1 formData file true "First file"
// @Param file2 formData file true "Second file"
// @Param column1 formData string true "Column of the first file"
// @Param column2 formData string true "Column of the second file"
// @Param filter_column1 formData string false "Filter column of the first file"
// @Param filter_values1 formData []string false "Allowed values for filter_column1"
// @Param filter_column2 formData string false "Filter column of the second file"
// @Param filter_values2 formData []string false "Allowed values for filter_column2"
// @Success 200 {object} comparison.Result
// @Failure 400 {object} map[string]string "Missing field or unknown column"
// @Failure 413 {object} map[string]string "Upload too large"
// @Failure 422 {object} map[string]string "File cannot be parsed"
// @Router /comparisons [post]
func (h *comparisonHandler) compare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limitUploads(c, h.maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		respondUploadError(c, logger, "file1", err)
		return
	}

	opts := comparison.Options{
		LeftColumn:  strings.TrimSpace(c.PostForm("column1")),
		RightColumn: strings.TrimSpace(c.PostForm("column2")),
		LeftFilter:  formFilter(c, "filter_column1", "filter_values1"),
		RightFilter: formFilter(c, "filter_column2", "filter_values2"),
	}
	if opts.LeftColumn == "" || opts.RightColumn == "" {
		logger.Warn("Comparison columns missing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "column1 and column2 are required"})
		return
	}

	var files [2]portssvc.ComparisonFile
	for i, field := range []string{"file1", "file2"} {
		headers := form.File[field]
		if len(headers) == 0 {
			logger.Warn("Missing upload", slog.String("field", field))
			c.JSON(http.StatusBadRequest, gin.H{"error": "File field '" + field + "' is required"})
			return
		}
		f, err := headers[0].Open()
		if err != nil {
			logger.Error("Failed to open upload", slog.String("field", field), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}
		defer f.Close()
		files[i] = portssvc.ComparisonFile{Name: headers[0].Filename, Reader: f}
	}

	result, err := h.comparisonService.CompareFiles(c.Request.Context(), files[0], files[1], opts)
	if err != nil {
		respondError(c, logger, err, "compare files")
		return
	}
	c.JSON(http.StatusOK, result)
}

// columns godoc
// @Summary List the columns of a spreadsheet
// @Description Lets the client offer column choices before comparing
// @Tags comparisons
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param file formData file true "A .csv or .xlsx file"
// @Success 200 {object} map[string][]string
// @Failure 422 {object} map[string]string "File cannot be parsed"
// @Router /comparisons/columns [post]
func (h *comparisonHandler) columns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	upload, filename, ok := openUpload(c, logger, "file", h.maxUploadBytes)
	if !ok {
		return
	}
	defer upload.Close()

	columns, err := h.comparisonService.DescribeFile(c.Request.Context(), portssvc.ComparisonFile{Name: filename, Reader: upload})
	if err != nil {
		respondError(c, logger, err, "read columns")
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func formFilter(c *gin.Context, columnField, valuesField string) *comparison.RowFilter {
	column := strings.TrimSpace(c.PostForm(columnField))
	if column == "" {
		return nil
	}
	return &comparison.RowFilter{Column: column, Values: c.PostFormArray(valuesField)}
}
