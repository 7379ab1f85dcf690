package service

import (
	"context"

	"library-backend/internal/domains/loan/model"
)

type ServiceInterface interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (int64, error)
	Return(ctx context.Context, loanID int64) error
	ListActiveLoans(ctx context.Context) ([]model.ActiveLoanResponse, error)
	WriteOffCopy(ctx context.Context, copyID int64, req model.WriteOffRequest) error
	MarkCopyLost(ctx context.Context, copyID int64) error
}
