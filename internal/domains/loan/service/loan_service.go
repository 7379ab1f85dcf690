package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	"library-backend/pkg/cache"
)

type LoanService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &LoanService{
		repo:  repo,
		cache: cache,
	}
}

// Checkout opens a loan: an available copy of the requested book moves to
// the on-loan state and the loan row is created, atomically.
func (s *LoanService) Checkout(ctx context.Context, req model.CheckoutRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	loanID, err := s.repo.Checkout(ctx, model.CheckoutParams{
		ReaderID: req.ReaderID,
		BookID:   req.BookID,
		DueDate:  req.ParsedDueDate(),
	})
	if err != nil {
		return 0, err
	}

	s.invalidateStats(ctx)
	return loanID, nil
}

func (s *LoanService) Return(ctx context.Context, loanID int64) error {
	if err := s.repo.Return(ctx, loanID); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *LoanService) ListActiveLoans(ctx context.Context) ([]model.ActiveLoanResponse, error) {
	rows, err := s.repo.ListActiveLoans(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.ActiveLoanResponse, len(rows))
	for i, row := range rows {
		responses[i] = model.ToActiveLoanResponse(row)
	}
	return responses, nil
}

func (s *LoanService) WriteOffCopy(ctx context.Context, copyID int64, req model.WriteOffRequest) error {
	var reason *string
	if r := strings.TrimSpace(req.Reason); r != "" {
		reason = &r
	}

	if err := s.repo.WriteOffCopy(ctx, copyID, reason); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *LoanService) MarkCopyLost(ctx context.Context, copyID int64) error {
	if err := s.repo.MarkCopyLost(ctx, copyID); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *LoanService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyDashboardStats); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard stats cache")
	}
}
