package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	booksvc "library-backend/internal/domains/book/service"
	readersvc "library-backend/internal/domains/reader/service"
	"library-backend/internal/domains/stats"
	"library-backend/internal/web/view"
)

// Pages serves the server-rendered HTML surface. It reads through the same
// services as the JSON API, so both views always agree.
type Pages struct {
	books   booksvc.ServiceInterface
	readers readersvc.ServiceInterface
	stats   stats.Service
}

func NewPages(books booksvc.ServiceInterface, readers readersvc.ServiceInterface, s stats.Service) *Pages {
	return &Pages{
		books:   books,
		readers: readers,
		stats:   s,
	}
}

// Home - GET /
func (p *Pages) Home(c *gin.Context) {
	result, err := p.stats.GetDashboardStats(c.Request.Context())
	if err != nil {
		p.renderError(c, "homepage", err)
		return
	}

	c.HTML(http.StatusOK, "homepage.html", gin.H{
		"Stats": result,
	})
}

// Books - GET /books?search=
func (p *Pages) Books(c *gin.Context) {
	search := c.Query("search")

	rows, err := p.books.SearchBooks(c.Request.Context(), search)
	if err != nil {
		p.renderError(c, "books page", err)
		return
	}

	c.HTML(http.StatusOK, "books.html", gin.H{
		"Page":   view.BuildBooksPage(rows),
		"Search": search,
	})
}

// Readers - GET /readers?search=
func (p *Pages) Readers(c *gin.Context) {
	search := c.Query("search")

	rows, err := p.readers.SearchReaders(c.Request.Context(), search)
	if err != nil {
		p.renderError(c, "readers page", err)
		return
	}

	c.HTML(http.StatusOK, "readers.html", gin.H{
		"Page":   view.BuildReadersPage(rows),
		"Search": search,
	})
}

func (p *Pages) renderError(c *gin.Context, page string, err error) {
	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("page", page).
		Msg("page render failed")

	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Detail": "Внутренняя ошибка сервера",
	})
}
