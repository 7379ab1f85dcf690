package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/response"
)

// Handler exposes the circulation JSON API.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Checkout - POST /api/loans/
func (h *Handler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid checkout request body")
		response.BadRequest(c, "Некорректное тело запроса")
		return
	}

	loanID, err := h.service.Checkout(c.Request.Context(), req)
	if model.HandleLoanError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Книга успешно выдана",
		"loan_id": loanID,
	})
}

// Return - POST /api/loans/:id/return
func (h *Handler) Return(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.service.Return(c.Request.Context(), id)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Книга успешно возвращена")
}

// ListActiveLoans - GET /api/loans/active
func (h *Handler) ListActiveLoans(c *gin.Context) {
	loans, err := h.service.ListActiveLoans(c.Request.Context())
	if model.HandleLoanError(c, err) {
		return
	}

	c.JSON(http.StatusOK, loans)
}

// WriteOffCopy - POST /api/copies/:id/write-off
func (h *Handler) WriteOffCopy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// The body is optional; a bare POST writes off without a reason.
	var req model.WriteOffRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn().Err(err).Msg("invalid write-off request body")
			response.BadRequest(c, "Некорректное тело запроса")
			return
		}
	}

	err := h.service.WriteOffCopy(c.Request.Context(), id, req)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Экземпляр успешно списан")
}

// MarkCopyLost - POST /api/copies/:id/lost
func (h *Handler) MarkCopyLost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.service.MarkCopyLost(c.Request.Context(), id)
	if model.HandleLoanError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Экземпляр отмечен как утерянный")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Некорректный идентификатор")
		return 0, false
	}
	return id, true
}
