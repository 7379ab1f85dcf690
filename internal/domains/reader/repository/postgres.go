package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/reader/model"
	"library-backend/pkg/database"
)

const uniqueViolationCode = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetReaderByID(ctx context.Context, id int64) (*model.Reader, error) {
	var reader model.Reader
	err := r.pool.QueryRow(ctx, `
    SELECT reader_id, fio, dolzhnost, uchenaya_stepen
    FROM readers
    WHERE reader_id = $1
  `, id).Scan(&reader.ID, &reader.FIO, &reader.Post, &reader.Degree)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to get reader by id: %w", err)
	}

	return &reader, nil
}

// SearchReaders filters by case-insensitive name prefix. Active loans are a
// LEFT-JOINed count so readers without loans still appear with 0.
func (r *postgresRepository) SearchReaders(ctx context.Context, search string) ([]model.ReaderSearchRow, error) {
	query := `
    SELECT r.reader_id, r.fio, r.dolzhnost, r.uchenaya_stepen,
           COUNT(bl.loan_id) AS active_loans_count
    FROM readers r
    LEFT JOIN book_loans bl
        ON bl.reader_id = r.reader_id AND bl.loan_return_date IS NULL
    WHERE r.fio ILIKE $1 || '%'
    GROUP BY r.reader_id, r.fio, r.dolzhnost, r.uchenaya_stepen
    ORDER BY r.fio
  `

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search readers: %w", err)
	}
	defer rows.Close()

	var result []model.ReaderSearchRow
	for rows.Next() {
		var row model.ReaderSearchRow
		err := rows.Scan(&row.ID, &row.FIO, &row.Post, &row.Degree, &row.ActiveLoans)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reader row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reader rows: %w", err)
	}

	return result, nil
}

// CreateReader inserts and lets the unique constraint on fio arbitrate
// duplicates; no racy pre-check.
func (r *postgresRepository) CreateReader(ctx context.Context, params model.ReaderParams) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
    INSERT INTO readers (fio, dolzhnost, uchenaya_stepen)
    VALUES ($1, $2, $3)
    RETURNING reader_id
  `, params.FIO, params.Post, params.Degree).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrReaderAlreadyExists
		}
		return 0, fmt.Errorf("failed to create reader: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) UpdateReader(ctx context.Context, id int64, params model.ReaderParams) error {
	tag, err := r.pool.Exec(ctx, `
    UPDATE readers
    SET fio = $1, dolzhnost = $2, uchenaya_stepen = $3
    WHERE reader_id = $4
  `, params.FIO, params.Post, params.Degree, id)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrReaderAlreadyExists
		}
		return fmt.Errorf("failed to update reader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReaderNotFound
	}

	return nil
}

// DeleteReader removes the reader and their loan history in one transaction,
// blocked while any loan is still open.
func (r *postgresRepository) DeleteReader(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM readers WHERE reader_id = $1)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check reader existence: %w", err)
		}
		if !exists {
			return model.ErrReaderNotFound
		}

		var activeLoans int
		err = tx.QueryRow(ctx, `
      SELECT COUNT(*)
      FROM book_loans
      WHERE reader_id = $1 AND loan_return_date IS NULL
    `, id).Scan(&activeLoans)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if activeLoans > 0 {
			return model.ErrReaderHasActiveLoans
		}

		if _, err = tx.Exec(ctx, `DELETE FROM book_loans WHERE reader_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete loan history: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM readers WHERE reader_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete reader: %w", err)
		}

		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
