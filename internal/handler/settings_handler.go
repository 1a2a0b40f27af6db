package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pactly/internal/service"
)

// SettingsHandler manages a tenant's export branding.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
// @Summary Get brand settings
// @Description Returns the tenant's export branding, or defaults when none are saved.
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.BrandSettings} "Brand settings"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.Get(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// Update handles PUT /api/v1/settings
// @Summary Update brand settings
// @Description Updates company name, primary color (#RRGGBB) and logo URL. Omitted fields are unchanged.
// @Tags settings
// @Accept json
// @Produce json
// @Param body body UpdateSettingsRequest true "Settings to change"
// @Success 200 {object} Response{data=domain.BrandSettings} "Updated settings"
// @Failure 400 {object} ErrorResponseBody "Invalid color or body"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// UploadLogo handles POST /api/v1/settings/logo
// @Summary Upload a logo
// @Description Uploads a PNG or JPEG logo shown in export headers.
// @Tags settings
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image (PNG or JPEG)"
// @Success 200 {object} Response{data=domain.BrandSettings} "Updated settings"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /settings/logo [post]
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "logo field is required")
		return
	}
	defer func() { _ = file.Close() }()

	settings, err := h.settingsService.UploadLogo(c.Request.Context(), service.LogoUploadInput{
		TenantID: tenantID,
		File:     file,
		Size:     header.Size,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// DeleteLogo handles DELETE /api/v1/settings/logo
// @Summary Remove the logo
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.BrandSettings} "Updated settings"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /settings/logo [delete]
func (h *SettingsHandler) DeleteLogo(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.DeleteLogo(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}
