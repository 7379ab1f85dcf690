package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/reader/model"
	"library-backend/internal/domains/reader/service"
	"library-backend/internal/shared/response"
)

// Handler exposes the readers JSON API.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetReader - GET /api/readers/:id
func (h *Handler) GetReader(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reader, err := h.service.GetReader(c.Request.Context(), id)
	if model.HandleReaderError(c, err) {
		return
	}

	c.JSON(http.StatusOK, reader)
}

// AddReader - POST /api/readers/
func (h *Handler) AddReader(c *gin.Context) {
	var req model.ReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid add reader request body")
		response.BadRequest(c, "Некорректное тело запроса")
		return
	}

	err := h.service.AddReader(c.Request.Context(), req)
	if model.HandleReaderError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Читатель успешно добавлен")
}

// UpdateReader - PUT /api/readers/:id
func (h *Handler) UpdateReader(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.ReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid update reader request body")
		response.BadRequest(c, "Некорректное тело запроса")
		return
	}

	err := h.service.UpdateReader(c.Request.Context(), id, req)
	if model.HandleReaderError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Читатель успешно обновлен")
}

// DeleteReader - DELETE /api/readers/:id
func (h *Handler) DeleteReader(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.service.DeleteReader(c.Request.Context(), id)
	if model.HandleReaderError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Читатель успешно удален")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Некорректный идентификатор")
		return 0, false
	}
	return id, true
}
