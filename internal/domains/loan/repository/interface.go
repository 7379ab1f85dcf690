package repository

import (
	"context"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface is the data-access contract for circulation. Checkout
// and return are single transactions pairing the loan row mutation with the
// copy's state transition.
type RepositoryInterface interface {
	Checkout(ctx context.Context, params model.CheckoutParams) (int64, error)
	Return(ctx context.Context, loanID int64) error
	ListActiveLoans(ctx context.Context) ([]model.ActiveLoanRow, error)
	WriteOffCopy(ctx context.Context, copyID int64, reason *string) error
	MarkCopyLost(ctx context.Context, copyID int64) error
}
