package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book/model"
	infra "library-backend/internal/infrastructure/database"
	"library-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface over pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// GetBookByID returns the joined detail row plus the linked author names.
func (r *postgresRepository) GetBookByID(ctx context.Context, id int64) (*model.BookDetail, error) {
	query := `
    SELECT b.book_id, b.book_name, p.publisher_name, b.isbn, b.release_date, t.theme_name
    FROM books b
    LEFT JOIN publishers p ON p.publisher_id = b.publisher_id
    LEFT JOIN themes t ON t.theme_id = b.theme_id
    WHERE b.book_id = $1
  `

	var detail model.BookDetail
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Publisher,
		&detail.ISBN,
		&detail.ReleaseDate,
		&detail.Theme,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	authorsQuery := `
    SELECT a.author_name
    FROM authors a
    JOIN author_book ab ON ab.author_id = a.author_id
    WHERE ab.book_id = $1
    ORDER BY a.author_name
  `

	rows, err := r.pool.Query(ctx, authorsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		detail.Authors = append(detail.Authors, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}

	return &detail, nil
}

// SearchBooks filters by case-insensitive substring match. Availability is a
// LEFT-JOINed aggregate so books with zero available copies still appear with
// a count of 0.
func (r *postgresRepository) SearchBooks(ctx context.Context, search string) ([]model.BookSearchRow, error) {
	query := `
    SELECT b.book_id, b.book_name, t.theme_name, p.publisher_name,
           b.release_date, b.isbn,
           COALESCE(avail.cnt, 0) AS available_book_count,
           COALESCE(total.cnt, 0) AS total_book_count
    FROM books b
    LEFT JOIN publishers p ON p.publisher_id = b.publisher_id
    LEFT JOIN themes t ON t.theme_id = b.theme_id
    LEFT JOIN (
        SELECT book_id, COUNT(*) AS cnt
        FROM book_items
        WHERE book_state = 'Доступна'
        GROUP BY book_id
    ) avail ON avail.book_id = b.book_id
    LEFT JOIN (
        SELECT book_id, COUNT(*) AS cnt
        FROM book_items
        GROUP BY book_id
    ) total ON total.book_id = b.book_id
    WHERE b.book_name ILIKE '%' || $1 || '%'
    ORDER BY b.book_name, b.book_id
  `

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	var result []model.BookSearchRow
	for rows.Next() {
		var row model.BookSearchRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Theme,
			&row.Publisher,
			&row.ReleaseDate,
			&row.ISBN,
			&row.AvailableCount,
			&row.TotalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return result, nil
}

// CreateBook resolves references, inserts the book, links authors and creates
// the copies in one transaction. Any failure rolls back everything, including
// rows created by the find-or-create steps.
func (r *postgresRepository) CreateBook(ctx context.Context, params model.CreateBookParams) (int64, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		publisherID, err := r.resolvePublisher(ctx, tx, params.Publisher)
		if err != nil {
			return 0, err
		}

		themeID, err := r.resolveTheme(ctx, tx, params.Theme)
		if err != nil {
			return 0, err
		}

		var bookID int64
		err = tx.QueryRow(ctx, `
      INSERT INTO books (book_name, publisher_id, isbn, release_date, theme_id)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING book_id
    `, params.Name, publisherID, params.ISBN, params.ReleaseDate, themeID).Scan(&bookID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert book: %w", err)
		}

		if err := r.linkAuthors(ctx, tx, bookID, params.Authors); err != nil {
			return 0, err
		}

		for i := 0; i < params.Copies; i++ {
			_, err := tx.Exec(ctx, `
        INSERT INTO book_items (book_id, book_state, acquisition_date)
        VALUES ($1, $2, CURRENT_DATE)
      `, bookID, model.BookStateAvailable)
			if err != nil {
				return 0, fmt.Errorf("failed to insert book item: %w", err)
			}
		}

		return bookID, nil
	})
}

// UpdateBook overwrites the book row; the author link set is replaced only
// when a non-empty author list was supplied.
func (r *postgresRepository) UpdateBook(ctx context.Context, id int64, params model.UpdateBookParams) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := bookExists(ctx, tx, id); err != nil {
			return err
		}

		publisherID, err := r.resolvePublisher(ctx, tx, params.Publisher)
		if err != nil {
			return err
		}

		themeID, err := r.resolveTheme(ctx, tx, params.Theme)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
      UPDATE books
      SET book_name = $1, publisher_id = $2, isbn = $3, release_date = $4, theme_id = $5
      WHERE book_id = $6
    `, params.Name, publisherID, params.ISBN, params.ReleaseDate, themeID, id)
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		if len(params.Authors) > 0 {
			_, err = tx.Exec(ctx, `DELETE FROM author_book WHERE book_id = $1`, id)
			if err != nil {
				return fmt.Errorf("failed to clear author links: %w", err)
			}

			if err := r.linkAuthors(ctx, tx, id, params.Authors); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteBook is blocked while any copy of the book is out on an active loan.
func (r *postgresRepository) DeleteBook(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := bookExists(ctx, tx, id); err != nil {
			return err
		}

		var activeLoans int
		err := tx.QueryRow(ctx, `
      SELECT COUNT(*)
      FROM book_loans bl
      JOIN book_items bi ON bi.book_item_id = bl.book_item_id
      WHERE bi.book_id = $1 AND bl.loan_return_date IS NULL
    `, id).Scan(&activeLoans)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if activeLoans > 0 {
			return model.ErrBookHasActiveLoans
		}

		// Loan history of this book's copies goes with them.
		_, err = tx.Exec(ctx, `
      DELETE FROM book_loans
      WHERE book_item_id IN (SELECT book_item_id FROM book_items WHERE book_id = $1)
    `, id)
		if err != nil {
			return fmt.Errorf("failed to delete loan history: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM author_book WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete author links: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM book_items WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete book items: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM books WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) ListCopies(ctx context.Context, bookID int64) ([]model.BookItem, error) {
	if err := bookExists(ctx, r.pool, bookID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
    SELECT book_item_id, book_id, book_state, acquisition_date, write_off_reason
    FROM book_items
    WHERE book_id = $1
    ORDER BY book_item_id
  `, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list copies: %w", err)
	}
	defer rows.Close()

	var items []model.BookItem
	for rows.Next() {
		var item model.BookItem
		err := rows.Scan(&item.ID, &item.BookID, &item.State, &item.AcquisitionDate, &item.WriteOffReason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan copy row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating copy rows: %w", err)
	}

	return items, nil
}

func bookExists(ctx context.Context, q infra.Querier, id int64) error {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check book existence: %w", err)
	}
	if !exists {
		return model.ErrBookNotFound
	}
	return nil
}

// resolvePublisher finds or creates a publisher by exact name. The insert is
// an ON CONFLICT DO NOTHING followed by a re-select, so two concurrent
// requests referencing the same new name converge on one row.
func (r *postgresRepository) resolvePublisher(ctx context.Context, q infra.Querier, name *string) (*int64, error) {
	if name == nil {
		return nil, nil
	}

	_, err := q.Exec(ctx, `
    INSERT INTO publishers (publisher_name) VALUES ($1)
    ON CONFLICT (publisher_name) DO NOTHING
  `, *name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert publisher: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, `SELECT publisher_id FROM publishers WHERE publisher_name = $1`, *name).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve publisher: %w", err)
	}
	return &id, nil
}

func (r *postgresRepository) resolveTheme(ctx context.Context, q infra.Querier, name *string) (*int64, error) {
	if name == nil {
		return nil, nil
	}

	_, err := q.Exec(ctx, `
    INSERT INTO themes (theme_name) VALUES ($1)
    ON CONFLICT (theme_name) DO NOTHING
  `, *name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert theme: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, `SELECT theme_id FROM themes WHERE theme_name = $1`, *name).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve theme: %w", err)
	}
	return &id, nil
}

// linkAuthors resolves each author by name and inserts the association.
// The composite primary key absorbs duplicates in the incoming list.
func (r *postgresRepository) linkAuthors(ctx context.Context, q infra.Querier, bookID int64, authors []string) error {
	for _, name := range authors {
		_, err := q.Exec(ctx, `
      INSERT INTO authors (author_name) VALUES ($1)
      ON CONFLICT (author_name) DO NOTHING
    `, name)
		if err != nil {
			return fmt.Errorf("failed to upsert author: %w", err)
		}

		var authorID int64
		err = q.QueryRow(ctx, `SELECT author_id FROM authors WHERE author_name = $1`, name).Scan(&authorID)
		if err != nil {
			return fmt.Errorf("failed to resolve author: %w", err)
		}

		_, err = q.Exec(ctx, `
      INSERT INTO author_book (author_id, book_id) VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, authorID, bookID)
		if err != nil {
			return fmt.Errorf("failed to link author: %w", err)
		}
	}
	return nil
}
