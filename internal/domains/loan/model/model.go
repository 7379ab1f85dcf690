package model

import "time"

// ActiveLoanRow is one row of the active-loans listing, joined with the
// borrower and the borrowed title. A loan is active while its return date
// is NULL; a copy has at most one active loan.
type ActiveLoanRow struct {
	ID         int64
	LoanDate   time.Time
	DueDate    *time.Time
	BookItemID int64
	BookName   string
	ReaderID   int64
	ReaderFIO  string
}

// CheckoutParams carries a validated checkout: the service picks which
// available copy of the book is handed out.
type CheckoutParams struct {
	ReaderID int64
	BookID   int64
	DueDate  *time.Time
}
