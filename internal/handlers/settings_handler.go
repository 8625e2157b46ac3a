package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-center/internal/dto"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	ucSettings "github.com/BruksfildServices01/service-center/internal/usecase/settings"
)

type SettingsHandler struct {
	settings *ucSettings.Service
}

func NewSettingsHandler(settings *ucSettings.Service) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type UpdateSettingsRequest struct {
	OffPeakDays []string `json:"off_peak_days"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	snap, err := h.settings.Get(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsDTO{OffPeakDays: snap.OffPeakDays()})
}

// Update requires off_peak_days to be a JSON array; any other shape is
// rejected by the decoder or by the nil check in the use case.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	snap, err := h.settings.Replace(c.Request.Context(), middleware.CallerFrom(c).UserID, req.OffPeakDays)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsDTO{OffPeakDays: snap.OffPeakDays()})
}
