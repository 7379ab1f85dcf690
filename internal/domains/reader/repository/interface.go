package repository

import (
	"context"

	"library-backend/internal/domains/reader/model"
)

// RepositoryInterface is the data-access contract for readers. Uniqueness of
// fio is enforced by the storage layer; duplicate inserts surface as
// model.ErrReaderAlreadyExists.
type RepositoryInterface interface {
	GetReaderByID(ctx context.Context, id int64) (*model.Reader, error)
	SearchReaders(ctx context.Context, search string) ([]model.ReaderSearchRow, error)
	CreateReader(ctx context.Context, params model.ReaderParams) (int64, error)
	UpdateReader(ctx context.Context, id int64, params model.ReaderParams) error
	DeleteReader(ctx context.Context, id int64) error
}
