package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

// CheckoutRequest is the typed body of POST /api/loans/.
type CheckoutRequest struct {
	ReaderID int64  `json:"reader_id"`
	BookID   int64  `json:"book_id"`
	DueDate  string `json:"due_date"`
}

func (r CheckoutRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ReaderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.BookID, validation.Required, validation.Min(int64(1))),
	)
	if err != nil {
		return ErrInvalidCheckoutRequest
	}

	if strings.TrimSpace(r.DueDate) != "" {
		if _, err := time.Parse(dateLayout, strings.TrimSpace(r.DueDate)); err != nil {
			return ErrInvalidDueDate
		}
	}
	return nil
}

// ParsedDueDate returns the optional due date; Validate must have passed.
func (r CheckoutRequest) ParsedDueDate() *time.Time {
	s := strings.TrimSpace(r.DueDate)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// WriteOffRequest is the typed body of POST /api/copies/{id}/write-off.
type WriteOffRequest struct {
	Reason string `json:"reason"`
}

// ActiveLoanResponse is one row of GET /api/loans/active.
type ActiveLoanResponse struct {
	ID         int64  `json:"id"`
	LoanDate   string `json:"loan_date"`
	DueDate    string `json:"due_date"`
	BookItemID int64  `json:"book_item_id"`
	BookName   string `json:"book_name"`
	ReaderID   int64  `json:"reader_id"`
	ReaderFIO  string `json:"reader_fio"`
}

func ToActiveLoanResponse(row ActiveLoanRow) ActiveLoanResponse {
	resp := ActiveLoanResponse{
		ID:         row.ID,
		LoanDate:   row.LoanDate.Format(dateLayout),
		BookItemID: row.BookItemID,
		BookName:   row.BookName,
		ReaderID:   row.ReaderID,
		ReaderFIO:  row.ReaderFIO,
	}
	if row.DueDate != nil {
		resp.DueDate = row.DueDate.Format(dateLayout)
	}
	return resp
}
