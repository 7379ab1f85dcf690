package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/response"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrBookNameRequired   = errors.New("book name is required")
	ErrBookHasActiveLoans = errors.New("book has active loans")
)

var bookErrorMap = map[error]struct {
	Status int
	Detail string
}{
	ErrBookNotFound:       {Status: http.StatusNotFound, Detail: "Книга не найдена"},
	ErrBookNameRequired:   {Status: http.StatusBadRequest, Detail: "Название книги обязательно"},
	ErrBookHasActiveLoans: {Status: http.StatusBadRequest, Detail: "Нельзя удалить книгу, у которой есть активные займы"},
}

// HandleBookError maps a domain error onto the wire contract. Returns true
// when a response has been written. Unknown errors are logged and answered
// with a generic 500 so driver details never leak to clients.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.Detail(c, cfg.Status, cfg.Detail)
			return true
		}
	}

	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("book operation failed")
	response.InternalServerError(c)
	return true
}
