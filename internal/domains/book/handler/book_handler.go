package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

// Handler exposes the catalog JSON API.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, detail)
}

// AddBook - POST /api/books/
func (h *Handler) AddBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid add book request body")
		response.BadRequest(c, "Некорректное тело запроса")
		return
	}

	err := h.service.AddBook(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Книга успешно добавлена")
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid update book request body")
		response.BadRequest(c, "Некорректное тело запроса")
		return
	}

	err := h.service.UpdateBook(c.Request.Context(), id, req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Книга успешно обновлена")
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.service.DeleteBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Книга успешно удалена")
}

// ListCopies - GET /api/books/:id/copies
func (h *Handler) ListCopies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	copies, err := h.service.ListCopies(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, copies)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Некорректный идентификатор")
		return 0, false
	}
	return id, true
}
