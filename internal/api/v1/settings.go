package v1

import (
	"net/http"

	"github.com/factuurdesk/factuurdesk/internal/api/dto"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

// @Summary Get company settings
// @Description Get the company settings printed on documents, defaults when none are stored
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.CompanySettingsResponse
// @Router /settings/company [get]
func (h *SettingsHandler) GetCompanySettings(c *gin.Context) {
	company, err := h.service.GetCompanySettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanySettingsResponse(company))
}

// @Summary Update company settings
// @Description Replace the company settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateCompanySettingsRequest true "Company settings"
// @Success 200 {object} dto.CompanySettingsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /settings/company [put]
func (h *SettingsHandler) UpdateCompanySettings(c *gin.Context) {
	var req dto.UpdateCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	company, err := h.service.UpdateCompanySettings(c.Request.Context(), req.ToCompanySettings())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanySettingsResponse(company))
}
