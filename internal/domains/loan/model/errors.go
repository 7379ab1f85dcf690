package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	bookmodel "library-backend/internal/domains/book/model"
	readermodel "library-backend/internal/domains/reader/model"
	"library-backend/internal/shared/response"
)

var (
	ErrLoanNotFound           = errors.New("loan not found")
	ErrLoanAlreadyReturned    = errors.New("loan already returned")
	ErrNoAvailableCopies      = errors.New("no available copies")
	ErrCopyNotFound           = errors.New("book item not found")
	ErrCopyNotAvailable       = errors.New("book item is not available")
	ErrInvalidCheckoutRequest = errors.New("invalid checkout request")
	ErrInvalidDueDate         = errors.New("invalid due date")
)

var loanErrorMap = map[error]struct {
	Status int
	Detail string
}{
	ErrLoanNotFound:           {Status: http.StatusNotFound, Detail: "Займ не найден"},
	ErrLoanAlreadyReturned:    {Status: http.StatusBadRequest, Detail: "Займ уже закрыт"},
	ErrNoAvailableCopies:      {Status: http.StatusBadRequest, Detail: "Нет доступных экземпляров книги"},
	ErrCopyNotFound:           {Status: http.StatusNotFound, Detail: "Экземпляр не найден"},
	ErrCopyNotAvailable:       {Status: http.StatusBadRequest, Detail: "Экземпляр недоступен для этой операции"},
	ErrInvalidCheckoutRequest: {Status: http.StatusBadRequest, Detail: "Укажите читателя и книгу"},
	ErrInvalidDueDate:         {Status: http.StatusBadRequest, Detail: "Некорректная дата возврата"},

	// Cross-domain references: circulation touches both catalogs.
	bookmodel.ErrBookNotFound:     {Status: http.StatusNotFound, Detail: "Книга не найдена"},
	readermodel.ErrReaderNotFound: {Status: http.StatusNotFound, Detail: "Читатель не найден"},
}

// HandleLoanError maps a domain error onto the wire contract; same
// convention as the catalog's HandleBookError.
func HandleLoanError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range loanErrorMap {
		if errors.Is(err, sentinel) {
			response.Detail(c, cfg.Status, cfg.Detail)
			return true
		}
	}

	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("loan operation failed")
	response.InternalServerError(c)
	return true
}
