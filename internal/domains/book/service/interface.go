package service

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface is the catalog's business-logic contract.
type ServiceInterface interface {
	GetBook(ctx context.Context, id int64) (*model.BookDetailResponse, error)
	SearchBooks(ctx context.Context, search string) ([]model.BookSearchRow, error)
	AddBook(ctx context.Context, req model.BookRequest) error
	UpdateBook(ctx context.Context, id int64, req model.BookRequest) error
	DeleteBook(ctx context.Context, id int64) error
	ListCopies(ctx context.Context, bookID int64) ([]model.CopyResponse, error)
}
