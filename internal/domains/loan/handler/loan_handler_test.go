package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan/model"
)

type fakeService struct {
	checkoutReq  *model.CheckoutRequest
	checkoutErr  error
	returnErr    error
	writeOffReq  *model.WriteOffRequest
	markLostErr  error
	activeLoans  []model.ActiveLoanResponse
	writeOffErr  error
	returnedID   int64
	writeOffID   int64
	markedLostID int64
}

func (f *fakeService) Checkout(ctx context.Context, req model.CheckoutRequest) (int64, error) {
	f.checkoutReq = &req
	return 42, f.checkoutErr
}

func (f *fakeService) Return(ctx context.Context, loanID int64) error {
	f.returnedID = loanID
	return f.returnErr
}

func (f *fakeService) ListActiveLoans(ctx context.Context) ([]model.ActiveLoanResponse, error) {
	return f.activeLoans, nil
}

func (f *fakeService) WriteOffCopy(ctx context.Context, copyID int64, req model.WriteOffRequest) error {
	f.writeOffID = copyID
	f.writeOffReq = &req
	return f.writeOffErr
}

func (f *fakeService) MarkCopyLost(ctx context.Context, copyID int64) error {
	f.markedLostID = copyID
	return f.markLostErr
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.POST("/api/loans/", h.Checkout)
	router.POST("/api/loans/:id/return", h.Return)
	router.GET("/api/loans/active", h.ListActiveLoans)
	router.POST("/api/copies/:id/write-off", h.WriteOffCopy)
	router.POST("/api/copies/:id/lost", h.MarkCopyLost)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutOK(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/loans/",
		`{"reader_id": 1, "book_id": 2, "due_date": "2026-10-01"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Книга успешно выдана", "loan_id": 42}`, w.Body.String())

	require.NotNil(t, svc.checkoutReq)
	assert.Equal(t, int64(1), svc.checkoutReq.ReaderID)
	assert.Equal(t, int64(2), svc.checkoutReq.BookID)
}

func TestCheckoutNoAvailableCopies(t *testing.T) {
	router := setupRouter(&fakeService{checkoutErr: model.ErrNoAvailableCopies})

	w := doRequest(router, http.MethodPost, "/api/loans/", `{"reader_id": 1, "book_id": 2}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Нет доступных экземпляров книги"}`, w.Body.String())
}

func TestReturnAlreadyReturned(t *testing.T) {
	router := setupRouter(&fakeService{returnErr: model.ErrLoanAlreadyReturned})

	w := doRequest(router, http.MethodPost, "/api/loans/5/return", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Займ уже закрыт"}`, w.Body.String())
}

func TestReturnOK(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/loans/5/return", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Книга успешно возвращена"}`, w.Body.String())
	assert.Equal(t, int64(5), svc.returnedID)
}

func TestListActiveLoans(t *testing.T) {
	router := setupRouter(&fakeService{activeLoans: []model.ActiveLoanResponse{
		{ID: 1, LoanDate: "2026-09-01", BookName: "Дюна", ReaderFIO: "Иванов И.И."},
	}})

	w := doRequest(router, http.MethodGet, "/api/loans/active", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"book_name":"Дюна"`)
	assert.Contains(t, w.Body.String(), `"reader_fio":"Иванов И.И."`)
}

func TestWriteOffCopyWithoutBody(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/copies/7/write-off", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Экземпляр успешно списан"}`, w.Body.String())
	assert.Equal(t, int64(7), svc.writeOffID)
	require.NotNil(t, svc.writeOffReq)
	assert.Equal(t, "", svc.writeOffReq.Reason)
}

func TestWriteOffCopyWithReason(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/copies/7/write-off", `{"reason": "ветхость"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ветхость", svc.writeOffReq.Reason)
}

func TestWriteOffCopyNotAvailable(t *testing.T) {
	router := setupRouter(&fakeService{writeOffErr: model.ErrCopyNotAvailable})

	w := doRequest(router, http.MethodPost, "/api/copies/7/write-off", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Экземпляр недоступен для этой операции"}`, w.Body.String())
}

func TestMarkCopyLost(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/copies/9/lost", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Экземпляр отмечен как утерянный"}`, w.Body.String())
	assert.Equal(t, int64(9), svc.markedLostID)
}
