package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/cache"
)

// BookService implements ServiceInterface.
type BookService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &BookService{
		repo:  repo,
		cache: cache,
	}
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.BookDetailResponse, error) {
	detail, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToBookDetailResponse(detail), nil
}

func (s *BookService) SearchBooks(ctx context.Context, search string) ([]model.BookSearchRow, error) {
	return s.repo.SearchBooks(ctx, strings.TrimSpace(search))
}

// AddBook validates the request, normalizes the optional fields and creates
// the book with its author links and copies in one transaction.
func (s *BookService) AddBook(ctx context.Context, req model.BookRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	copies := req.NumberOfBooks.IntOr(1)
	if copies < 1 {
		copies = 1
	}

	params := model.CreateBookParams{
		Name:        strings.TrimSpace(req.BookName),
		Authors:     model.SplitAuthors(req.Authors),
		Publisher:   optionalString(req.Publisher),
		Theme:       optionalString(req.Theme),
		ISBN:        optionalString(req.ISBN),
		ReleaseDate: optionalYear(req.ReleaseDate.Value, req.ReleaseDate.Valid),
		Copies:      copies,
	}

	if _, err := s.repo.CreateBook(ctx, params); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *BookService) UpdateBook(ctx context.Context, id int64, req model.BookRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	params := model.UpdateBookParams{
		Name:        strings.TrimSpace(req.BookName),
		Authors:     model.SplitAuthors(req.Authors),
		Publisher:   optionalString(req.Publisher),
		Theme:       optionalString(req.Theme),
		ISBN:        optionalString(req.ISBN),
		ReleaseDate: optionalYear(req.ReleaseDate.Value, req.ReleaseDate.Valid),
	}

	return s.repo.UpdateBook(ctx, id, params)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *BookService) ListCopies(ctx context.Context, bookID int64) ([]model.CopyResponse, error) {
	items, err := s.repo.ListCopies(ctx, bookID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.CopyResponse, len(items))
	for i, item := range items {
		responses[i] = model.ToCopyResponse(item)
	}
	return responses, nil
}

// invalidateStats drops the cached dashboard counters; a failed delete only
// shortens cache accuracy, so it is logged and not propagated.
func (s *BookService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyDashboardStats); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard stats cache")
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalYear applies the same coalescing rule as the request decoding:
// a year outside the storable smallint range is treated as absent, never
// wrapped.
func optionalYear(value int, valid bool) *int16 {
	if !valid || value < math.MinInt16 || value > math.MaxInt16 {
		return nil
	}
	year := int16(value)
	return &year
}
