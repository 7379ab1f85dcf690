package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetDashboardStats - GET /api/dashboard/stats
func (h *Handler) GetDashboardStats(c *gin.Context) {
	result, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("dashboard stats failed")
		response.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}
