package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/reader/model"
	"library-backend/internal/domains/reader/repository"
	"library-backend/pkg/cache"
)

type ReaderService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &ReaderService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ReaderService) GetReader(ctx context.Context, id int64) (*model.ReaderResponse, error) {
	reader, err := s.repo.GetReaderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToReaderResponse(reader), nil
}

func (s *ReaderService) SearchReaders(ctx context.Context, search string) ([]model.ReaderSearchRow, error) {
	return s.repo.SearchReaders(ctx, strings.TrimSpace(search))
}

func (s *ReaderService) AddReader(ctx context.Context, req model.ReaderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.CreateReader(ctx, toParams(req)); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *ReaderService) UpdateReader(ctx context.Context, id int64, req model.ReaderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.repo.UpdateReader(ctx, id, toParams(req))
}

func (s *ReaderService) DeleteReader(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReader(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *ReaderService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyDashboardStats); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard stats cache")
	}
}

func toParams(req model.ReaderRequest) model.ReaderParams {
	return model.ReaderParams{
		FIO:    strings.TrimSpace(req.FIO),
		Post:   optionalString(req.Post),
		Degree: optionalString(req.Degree),
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
