package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportResponse represents an exported report
type ReportResponse struct {
	Month     string `json:"month"`
	Path      string `json:"path"`
	URL       string `json:"url"`
	Rows      int    `json:"rows"`
	ExpiresAt string `json:"expiresAt"`
}

// ExportReport godoc
// @Summary Export a monthly CSV report
// @Description Uploads the month's expenses and budget status and returns a temporary download link
// @Tags reports
// @Produce json
// @Param month path string true "Calendar month (YYYY-MM)"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /reports/{month} [post]
func (h *ReportHandler) ExportReport(c echo.Context) error {
	month := c.Param("month")

	report, err := h.reportService.Export(c.Request().Context(), month)
	if err != nil {
		if errors.Is(err, domain.ErrReportsUnavailable) {
			return NewServiceUnavailableError(c, "Report export is not configured")
		}
		if handled(err) {
			return NewDomainError(c, err)
		}
		log.Error().Err(err).Str("month", month).Msg("Failed to export report")
		return NewInternalError(c, "Failed to export report")
	}

	return c.JSON(http.StatusCreated, ReportResponse{
		Month:     report.Month,
		Path:      report.Path,
		URL:       report.URL,
		Rows:      report.Rows,
		ExpiresAt: formatTimestamp(report.ExpiresAt),
	})
}
