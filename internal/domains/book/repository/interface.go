package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the data-access contract for the catalog.
// Multi-step writes are atomic: the implementation wraps them in a single
// request-scoped transaction.
type RepositoryInterface interface {
	GetBookByID(ctx context.Context, id int64) (*model.BookDetail, error)
	SearchBooks(ctx context.Context, search string) ([]model.BookSearchRow, error)
	CreateBook(ctx context.Context, params model.CreateBookParams) (int64, error)
	UpdateBook(ctx context.Context, id int64, params model.UpdateBookParams) error
	DeleteBook(ctx context.Context, id int64) error
	ListCopies(ctx context.Context, bookID int64) ([]model.BookItem, error)
}
