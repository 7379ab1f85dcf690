package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/response"
)

var (
	ErrReaderNotFound       = errors.New("reader not found")
	ErrFIORequired          = errors.New("reader fio is required")
	ErrReaderAlreadyExists  = errors.New("reader with this fio already exists")
	ErrReaderHasActiveLoans = errors.New("reader has active loans")
)

var readerErrorMap = map[error]struct {
	Status int
	Detail string
}{
	ErrReaderNotFound:       {Status: http.StatusNotFound, Detail: "Читатель не найден"},
	ErrFIORequired:          {Status: http.StatusBadRequest, Detail: "ФИО обязательно"},
	ErrReaderAlreadyExists:  {Status: http.StatusBadRequest, Detail: "Читатель с таким ФИО уже существует"},
	ErrReaderHasActiveLoans: {Status: http.StatusBadRequest, Detail: "Нельзя удалить читателя с активными займами"},
}

// HandleReaderError maps a domain error onto the wire contract; see the
// catalog's HandleBookError for the convention.
func HandleReaderError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range readerErrorMap {
		if errors.Is(err, sentinel) {
			response.Detail(c, cfg.Status, cfg.Detail)
			return true
		}
	}

	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("reader operation failed")
	response.InternalServerError(c)
	return true
}
