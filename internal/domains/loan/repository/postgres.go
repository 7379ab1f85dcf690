package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/loan/model"
	readermodel "library-backend/internal/domains/reader/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Checkout picks one available copy of the book, marks it on loan and
// inserts the loan row, all in one transaction. FOR UPDATE SKIP LOCKED keeps
// two concurrent checkouts of the last copy from both succeeding.
func (r *postgresRepository) Checkout(ctx context.Context, params model.CheckoutParams) (int64, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM readers WHERE reader_id = $1)`, params.ReaderID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check reader existence: %w", err)
		}
		if !exists {
			return 0, readermodel.ErrReaderNotFound
		}

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)`, params.BookID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check book existence: %w", err)
		}
		if !exists {
			return 0, bookmodel.ErrBookNotFound
		}

		var itemID int64
		err = tx.QueryRow(ctx, `
      SELECT book_item_id
      FROM book_items
      WHERE book_id = $1 AND book_state = $2
      ORDER BY book_item_id
      LIMIT 1
      FOR UPDATE SKIP LOCKED
    `, params.BookID, bookmodel.BookStateAvailable).Scan(&itemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, model.ErrNoAvailableCopies
			}
			return 0, fmt.Errorf("failed to pick available copy: %w", err)
		}

		_, err = tx.Exec(ctx, `
      UPDATE book_items SET book_state = $1 WHERE book_item_id = $2
    `, bookmodel.BookStateOnLoan, itemID)
		if err != nil {
			return 0, fmt.Errorf("failed to mark copy on loan: %w", err)
		}

		var loanID int64
		err = tx.QueryRow(ctx, `
      INSERT INTO book_loans (loan_date, loan_due_date, book_item_id, reader_id)
      VALUES (CURRENT_DATE, $1, $2, $3)
      RETURNING loan_id
    `, params.DueDate, itemID, params.ReaderID).Scan(&loanID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert loan: %w", err)
		}

		return loanID, nil
	})
}

// Return stamps the return date on an active loan and flips its copy back to
// available.
func (r *postgresRepository) Return(ctx context.Context, loanID int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var itemID int64
		var returned bool
		err := tx.QueryRow(ctx, `
      SELECT book_item_id, loan_return_date IS NOT NULL
      FROM book_loans
      WHERE loan_id = $1
      FOR UPDATE
    `, loanID).Scan(&itemID, &returned)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrLoanNotFound
			}
			return fmt.Errorf("failed to load loan: %w", err)
		}
		if returned {
			return model.ErrLoanAlreadyReturned
		}

		_, err = tx.Exec(ctx, `
      UPDATE book_loans SET loan_return_date = CURRENT_DATE WHERE loan_id = $1
    `, loanID)
		if err != nil {
			return fmt.Errorf("failed to close loan: %w", err)
		}

		_, err = tx.Exec(ctx, `
      UPDATE book_items SET book_state = $1 WHERE book_item_id = $2
    `, bookmodel.BookStateAvailable, itemID)
		if err != nil {
			return fmt.Errorf("failed to mark copy available: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) ListActiveLoans(ctx context.Context) ([]model.ActiveLoanRow, error) {
	rows, err := r.pool.Query(ctx, `
    SELECT bl.loan_id, bl.loan_date, bl.loan_due_date,
           bi.book_item_id, b.book_name,
           rd.reader_id, rd.fio
    FROM book_loans bl
    JOIN book_items bi ON bi.book_item_id = bl.book_item_id
    JOIN books b ON b.book_id = bi.book_id
    JOIN readers rd ON rd.reader_id = bl.reader_id
    WHERE bl.loan_return_date IS NULL
    ORDER BY bl.loan_date, bl.loan_id
  `)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	defer rows.Close()

	var result []model.ActiveLoanRow
	for rows.Next() {
		var row model.ActiveLoanRow
		err := rows.Scan(
			&row.ID, &row.LoanDate, &row.DueDate,
			&row.BookItemID, &row.BookName,
			&row.ReaderID, &row.ReaderFIO,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}

	return result, nil
}

// WriteOffCopy retires an available copy. A copy out on loan (or already
// written off or lost) cannot be written off.
func (r *postgresRepository) WriteOffCopy(ctx context.Context, copyID int64, reason *string) error {
	return r.transitionCopy(ctx, copyID, bookmodel.BookStateWrittenOff, reason)
}

// MarkCopyLost records the loss of an available copy.
func (r *postgresRepository) MarkCopyLost(ctx context.Context, copyID int64) error {
	return r.transitionCopy(ctx, copyID, bookmodel.BookStateLost, nil)
}

func (r *postgresRepository) transitionCopy(ctx context.Context, copyID int64, target bookmodel.BookState, reason *string) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var state bookmodel.BookState
		err := tx.QueryRow(ctx, `
      SELECT book_state FROM book_items WHERE book_item_id = $1 FOR UPDATE
    `, copyID).Scan(&state)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrCopyNotFound
			}
			return fmt.Errorf("failed to load copy: %w", err)
		}
		if state != bookmodel.BookStateAvailable {
			return model.ErrCopyNotAvailable
		}

		_, err = tx.Exec(ctx, `
      UPDATE book_items
      SET book_state = $1, write_off_reason = $2
      WHERE book_item_id = $3
    `, target, reason, copyID)
		if err != nil {
			return fmt.Errorf("failed to update copy state: %w", err)
		}

		return nil
	})
}
