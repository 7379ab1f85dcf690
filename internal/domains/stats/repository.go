package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
    SELECT
      (SELECT COUNT(*) FROM books),
      (SELECT COUNT(*) FROM book_items WHERE book_state = 'Доступна'),
      (SELECT COUNT(*) FROM readers),
      (SELECT COUNT(*) FROM book_loans WHERE loan_return_date IS NULL)
  `

	var s DashboardStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalBooks,
		&s.TotalAvailable,
		&s.TotalReaders,
		&s.ActiveLoans,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return &s, nil
}
