package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/testutil/pgtest"
)

func setup(t *testing.T) (context.Context, *pgxpool.Pool, repository.RepositoryInterface) {
	t.Helper()

	pool := pgtest.NewPool(t)
	pgtest.CleanTables(t, pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx, pool, repository.NewPostgresRepository(pool)
}

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, ctx context.Context, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(ctx, query, args...).Scan(&n))
	return n
}

func Test_CreateBook_DuplicateAuthorsCollapseIntoOneLink(t *testing.T) {
	ctx, pool, repo := setup(t)

	bookID, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:    "Война и мир",
		Authors: []string{"Толстой Л.Н.", "Иванов", "Иванов"},
		Copies:  1,
	})
	require.NoError(t, err)

	// The composite primary key absorbs the repeated name.
	assert.Equal(t, 2, countRows(t, ctx, pool,
		`SELECT COUNT(*) FROM author_book WHERE book_id = $1`, bookID))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT COUNT(*) FROM authors`))

	detail, err := repo.GetBookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Иванов", "Толстой Л.Н."}, detail.Authors)
}

func Test_CreateBook_FindOrCreateReusesExistingNames(t *testing.T) {
	ctx, pool, repo := setup(t)

	_, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:      "Первая",
		Publisher: strPtr("Эксмо"),
		Theme:     strPtr("Проза"),
		Copies:    1,
	})
	require.NoError(t, err)

	_, err = repo.CreateBook(ctx, model.CreateBookParams{
		Name:      "Вторая",
		Publisher: strPtr("Эксмо"),
		Theme:     strPtr("Проза"),
		Copies:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, ctx, pool, `SELECT COUNT(*) FROM publishers`))
	assert.Equal(t, 1, countRows(t, ctx, pool, `SELECT COUNT(*) FROM themes`))
}

func Test_SearchBooks_IncludesBooksWithoutCopies(t *testing.T) {
	ctx, pool, repo := setup(t)

	noCopiesID, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:   "Архивная книга",
		Copies: 0,
	})
	require.NoError(t, err)

	withCopiesID, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:   "Мастер и Маргарита",
		Copies: 2,
	})
	require.NoError(t, err)

	// One of the two copies goes out on loan.
	_, err = pool.Exec(ctx, `
    UPDATE book_items SET book_state = 'Займ'
    WHERE book_item_id = (
      SELECT book_item_id FROM book_items WHERE book_id = $1 LIMIT 1
    )
  `, withCopiesID)
	require.NoError(t, err)

	rows, err := repo.SearchBooks(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[int64]model.BookSearchRow{}
	for _, row := range rows {
		byID[row.ID] = row
	}

	assert.Equal(t, 0, byID[noCopiesID].AvailableCount)
	assert.Equal(t, 0, byID[noCopiesID].TotalCount)
	assert.Equal(t, 1, byID[withCopiesID].AvailableCount)
	assert.Equal(t, 2, byID[withCopiesID].TotalCount)
}

func Test_SearchBooks_SubstringCaseInsensitive(t *testing.T) {
	ctx, _, repo := setup(t)

	_, err := repo.CreateBook(ctx, model.CreateBookParams{Name: "Мастер и Маргарита", Copies: 1})
	require.NoError(t, err)
	_, err = repo.CreateBook(ctx, model.CreateBookParams{Name: "Война и мир", Copies: 1})
	require.NoError(t, err)

	rows, err := repo.SearchBooks(ctx, "маргарит")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Мастер и Маргарита", rows[0].Name)
}

func Test_UpdateBook_EmptyAuthorsKeepsLinks(t *testing.T) {
	ctx, pool, repo := setup(t)

	bookID, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:    "Старое название",
		Authors: []string{"Иванов", "Петров"},
		Copies:  1,
	})
	require.NoError(t, err)

	err = repo.UpdateBook(ctx, bookID, model.UpdateBookParams{Name: "Новое название"})
	require.NoError(t, err)

	detail, err := repo.GetBookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Новое название", detail.Name)
	assert.Equal(t, 2, countRows(t, ctx, pool,
		`SELECT COUNT(*) FROM author_book WHERE book_id = $1`, bookID))
}

func Test_DeleteBook_BlockedByActiveLoan(t *testing.T) {
	ctx, pool, repo := setup(t)

	bookID, err := repo.CreateBook(ctx, model.CreateBookParams{
		Name:    "Занятая книга",
		Authors: []string{"Иванов"},
		Copies:  1,
	})
	require.NoError(t, err)

	var readerID int64
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO readers (fio) VALUES ('Петров П.П.') RETURNING reader_id
  `).Scan(&readerID))

	var loanID int64
	require.NoError(t, pool.QueryRow(ctx, `
    INSERT INTO book_loans (loan_date, book_item_id, reader_id)
    SELECT CURRENT_DATE, book_item_id, $2 FROM book_items WHERE book_id = $1
    RETURNING loan_id
  `, bookID, readerID).Scan(&loanID))

	err = repo.DeleteBook(ctx, bookID)
	assert.ErrorIs(t, err, model.ErrBookHasActiveLoans)

	// The guard must leave everything in place.
	_, err = repo.GetBookByID(ctx, bookID)
	assert.NoError(t, err)
	assert.Equal(t, 1, countRows(t, ctx, pool,
		`SELECT COUNT(*) FROM book_items WHERE book_id = $1`, bookID))

	// Once the loan closes, the delete goes through and takes the history.
	_, err = pool.Exec(ctx, `
    UPDATE book_loans SET loan_return_date = CURRENT_DATE WHERE loan_id = $1
  `, loanID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBook(ctx, bookID))

	_, err = repo.GetBookByID(ctx, bookID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM book_items`))
	assert.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM book_loans`))
	assert.Equal(t, 0, countRows(t, ctx, pool, `SELECT COUNT(*) FROM author_book`))
}

func Test_GetBookByID_NotFound(t *testing.T) {
	ctx, _, repo := setup(t)

	_, err := repo.GetBookByID(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}
