package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

type fakeService struct {
	detail    *model.BookDetailResponse
	detailErr error
	addedReq  *model.BookRequest
	addErr    error
	deleteErr error
	copies    []model.CopyResponse
}

func (f *fakeService) GetBook(ctx context.Context, id int64) (*model.BookDetailResponse, error) {
	return f.detail, f.detailErr
}

func (f *fakeService) SearchBooks(ctx context.Context, search string) ([]model.BookSearchRow, error) {
	return nil, nil
}

func (f *fakeService) AddBook(ctx context.Context, req model.BookRequest) error {
	f.addedReq = &req
	return f.addErr
}

func (f *fakeService) UpdateBook(ctx context.Context, id int64, req model.BookRequest) error {
	return nil
}

func (f *fakeService) DeleteBook(ctx context.Context, id int64) error {
	return f.deleteErr
}

func (f *fakeService) ListCopies(ctx context.Context, bookID int64) ([]model.CopyResponse, error) {
	return f.copies, nil
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.GET("/api/books/:id", h.GetBook)
	router.POST("/api/books/", h.AddBook)
	router.DELETE("/api/books/:id", h.DeleteBook)
	router.GET("/api/books/:id/copies", h.ListCopies)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetBookOK(t *testing.T) {
	router := setupRouter(&fakeService{detail: &model.BookDetailResponse{
		ID:      1,
		Name:    "Мастер и Маргарита",
		Authors: "Булгаков М.А.",
	}})

	w := doRequest(router, http.MethodGet, "/api/books/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Мастер и Маргарита"`)
	assert.Contains(t, w.Body.String(), `"authors":"Булгаков М.А."`)
}

func TestGetBookNotFound(t *testing.T) {
	router := setupRouter(&fakeService{detailErr: model.ErrBookNotFound})

	w := doRequest(router, http.MethodGet, "/api/books/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "Книга не найдена"}`, w.Body.String())
}

func TestGetBookBadID(t *testing.T) {
	router := setupRouter(&fakeService{})

	w := doRequest(router, http.MethodGet, "/api/books/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Некорректный идентификатор"}`, w.Body.String())
}

func TestAddBookOK(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/books/",
		`{"book_name": "Тест", "authors": "Иванов", "number_of_books": "2"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Книга успешно добавлена"}`, w.Body.String())

	require.NotNil(t, svc.addedReq)
	assert.Equal(t, "Тест", svc.addedReq.BookName)
	assert.Equal(t, 2, svc.addedReq.NumberOfBooks.IntOr(1))
}

func TestAddBookMalformedBody(t *testing.T) {
	router := setupRouter(&fakeService{})

	w := doRequest(router, http.MethodPost, "/api/books/", `{"book_name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Некорректное тело запроса"}`, w.Body.String())
}

func TestAddBookValidationError(t *testing.T) {
	router := setupRouter(&fakeService{addErr: model.ErrBookNameRequired})

	w := doRequest(router, http.MethodPost, "/api/books/", `{"authors": "Иванов"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Название книги обязательно"}`, w.Body.String())
}

func TestDeleteBookActiveLoansGuard(t *testing.T) {
	router := setupRouter(&fakeService{deleteErr: model.ErrBookHasActiveLoans})

	w := doRequest(router, http.MethodDelete, "/api/books/3", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Нельзя удалить книгу, у которой есть активные займы"}`, w.Body.String())
}

func TestDeleteBookInternalErrorIsOpaque(t *testing.T) {
	router := setupRouter(&fakeService{deleteErr: errors.New("pq: connection refused")})

	w := doRequest(router, http.MethodDelete, "/api/books/3", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail": "Внутренняя ошибка сервера"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestListCopies(t *testing.T) {
	router := setupRouter(&fakeService{copies: []model.CopyResponse{
		{ID: 1, State: "Доступна", AcquisitionDate: "2026-01-10"},
	}})

	w := doRequest(router, http.MethodGet, "/api/books/1/copies", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"Доступна"`)
}
