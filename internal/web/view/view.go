package view

import (
	"strconv"

	bookmodel "library-backend/internal/domains/book/model"
	readermodel "library-backend/internal/domains/reader/model"
)

// Placeholder substitutes absent optional fields on the rendered pages.
const Placeholder = "Не указано"

// BookRow is a display-ready catalog row: every field is a string except the
// counters, with NULLs already coalesced.
type BookRow struct {
	ID          int64
	Name        string
	Theme       string
	Publisher   string
	ReleaseDate string
	ISBN        string
	Available   int
	Total       int
}

func ToBookRow(row bookmodel.BookSearchRow) BookRow {
	return BookRow{
		ID:          row.ID,
		Name:        row.Name,
		Theme:       coalesce(row.Theme),
		Publisher:   coalesce(row.Publisher),
		ReleaseDate: coalesceYear(row.ReleaseDate),
		ISBN:        coalesce(row.ISBN),
		Available:   row.AvailableCount,
		Total:       row.TotalCount,
	}
}

// BooksPage bundles the rows with the page-level summary metrics.
type BooksPage struct {
	Rows           []BookRow
	TotalBooks     int
	TotalCopies    int
	TotalAvailable int
}

func BuildBooksPage(rows []bookmodel.BookSearchRow) BooksPage {
	page := BooksPage{
		Rows:       make([]BookRow, len(rows)),
		TotalBooks: len(rows),
	}
	for i, row := range rows {
		page.Rows[i] = ToBookRow(row)
		page.TotalCopies += row.TotalCount
		page.TotalAvailable += row.AvailableCount
	}
	return page
}

// ReaderRow is a display-ready readers row.
type ReaderRow struct {
	ID          int64
	FIO         string
	Post        string
	Degree      string
	ActiveLoans int
}

func ToReaderRow(row readermodel.ReaderSearchRow) ReaderRow {
	return ReaderRow{
		ID:          row.ID,
		FIO:         row.FIO,
		Post:        coalesce(row.Post),
		Degree:      coalesce(row.Degree),
		ActiveLoans: row.ActiveLoans,
	}
}

type ReadersPage struct {
	Rows         []ReaderRow
	TotalReaders int
	ActiveLoans  int
}

func BuildReadersPage(rows []readermodel.ReaderSearchRow) ReadersPage {
	page := ReadersPage{
		Rows:         make([]ReaderRow, len(rows)),
		TotalReaders: len(rows),
	}
	for i, row := range rows {
		page.Rows[i] = ToReaderRow(row)
		page.ActiveLoans += row.ActiveLoans
	}
	return page
}

func coalesce(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

func coalesceYear(year *int16) string {
	if year == nil {
		return Placeholder
	}
	return strconv.Itoa(int(*year))
}
