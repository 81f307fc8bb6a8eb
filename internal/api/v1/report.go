package v1

import (
	"fmt"
	"net/http"

	"github.com/factuurdesk/factuurdesk/internal/api/dto"
	"github.com/factuurdesk/factuurdesk/internal/config"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/format"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/report"
	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	config        *config.Configuration
	display       *format.Display
	logger        *logger.Logger
}

func NewReportHandler(reportService service.ReportService, config *config.Configuration, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		config:        config,
		display:       format.NewDisplay(logger),
		logger:        logger,
	}
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}

// @Summary BTW quarter report
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param quarter query int true "Quarter 1-4"
// @Success 200 {object} dto.TaxReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/tax [get]
func (h *ReportHandler) GetTaxReport(c *gin.Context) {
	var req dto.TaxReportRequest
	if !bindQuery(c, &req) {
		return
	}

	r, err := h.reportService.GetTaxReport(c.Request.Context(), req.Year, req.Quarter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaxReportResponse(h.display, r))
}

// @Summary Monthly revenue report
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Success 200 {object} dto.RevenueReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/revenue [get]
func (h *ReportHandler) GetRevenueReport(c *gin.Context) {
	var req dto.RevenueReportRequest
	if !bindQuery(c, &req) {
		return
	}

	r, err := h.reportService.GetRevenueReport(c.Request.Context(), req.Year)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRevenueReportResponse(h.display, r))
}

// @Summary Receivables aging report
// @Tags Reports
// @Produce json
// @Param as_of query string false "Reference date YYYY-MM-DD, today when empty"
// @Success 200 {object} dto.AgingReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/aging [get]
func (h *ReportHandler) GetAgingReport(c *gin.Context) {
	var req dto.AgingReportRequest
	if !bindQuery(c, &req) {
		return
	}
	asOf, err := req.ParseAsOf(h.config.Reports.Location())
	if err != nil {
		c.Error(err)
		return
	}

	r, err := h.reportService.GetAgingReport(c.Request.Context(), asOf)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAgingReportResponse(h.display, r))
}

// @Summary Dashboard
// @Description Tax, revenue and aging computed over one invoice snapshot
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param quarter query int true "Quarter 1-4"
// @Param as_of query string false "Aging reference date YYYY-MM-DD"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	var req dto.DashboardRequest
	if !bindQuery(c, &req) {
		return
	}
	asOf, err := (&dto.AgingReportRequest{AsOf: req.AsOf}).ParseAsOf(h.config.Reports.Location())
	if err != nil {
		c.Error(err)
		return
	}

	d, err := h.reportService.GetDashboard(c.Request.Context(), req.Year, req.Quarter, asOf)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		Tax:     dto.NewTaxReportResponse(h.display, d.Tax),
		Revenue: dto.NewRevenueReportResponse(h.display, d.Revenue),
		Aging:   dto.NewAgingReportResponse(h.display, d.Aging),
	})
}

// @Summary Export report as CSV
// @Tags Reports
// @Produce text/csv
// @Param kind path string true "tax, revenue, aging or aging-band"
// @Param year query int false "Year"
// @Param quarter query int false "Quarter"
// @Param as_of query string false "Aging reference date YYYY-MM-DD"
// @Param band query string false "Aging band key"
// @Success 200 {file} text/csv
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/{kind}/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	kind := types.ReportKind(c.Param("kind"))

	var req dto.ExportRequest
	if !bindQuery(c, &req) {
		return
	}
	if err := req.Validate(kind); err != nil {
		c.Error(err)
		return
	}
	asOf, err := (&dto.AgingReportRequest{AsOf: req.AsOf}).ParseAsOf(h.config.Reports.Location())
	if err != nil {
		c.Error(err)
		return
	}

	export, err := h.reportService.ExportCSV(c.Request.Context(), &service.ExportRequest{
		Kind:    kind,
		Year:    req.Year,
		Quarter: req.Quarter,
		AsOf:    asOf,
		Band:    report.AgingBandKey(req.Band),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, service.ExportContentType, export.Data)
}
