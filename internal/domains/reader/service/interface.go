package service

import (
	"context"

	"library-backend/internal/domains/reader/model"
)

type ServiceInterface interface {
	GetReader(ctx context.Context, id int64) (*model.ReaderResponse, error)
	SearchReaders(ctx context.Context, search string) ([]model.ReaderSearchRow, error)
	AddReader(ctx context.Context, req model.ReaderRequest) error
	UpdateReader(ctx context.Context, id int64, req model.ReaderRequest) error
	DeleteReader(ctx context.Context, id int64) error
}
