package model

import "time"

// BookState is the lifecycle state of a physical copy. The values are stored
// verbatim; the storage layer enforces the closed set with a CHECK constraint.
type BookState string

const (
	BookStateAvailable  BookState = "Доступна"
	BookStateWrittenOff BookState = "Списана"
	BookStateLost       BookState = "Утеряна"
	BookStateOnLoan     BookState = "Займ"
)

// BookItem is one physical copy of a cataloged book.
type BookItem struct {
	ID              int64     `json:"id" db:"book_item_id"`
	BookID          int64     `json:"book_id" db:"book_id"`
	State           BookState `json:"state" db:"book_state"`
	AcquisitionDate time.Time `json:"acquisition_date" db:"acquisition_date"`
	WriteOffReason  *string   `json:"write_off_reason,omitempty" db:"write_off_reason"`
}

// BookDetail is the fully joined read model for a single book.
type BookDetail struct {
	ID          int64
	Name        string
	Authors     []string
	Publisher   *string
	ISBN        *string
	ReleaseDate *int16
	Theme       *string
}

// BookSearchRow is one row of the catalog search: joined names plus the
// derived availability aggregates. Counts default to zero for books without
// copies; the query must not drop such books.
type BookSearchRow struct {
	ID             int64
	Name           string
	Theme          *string
	Publisher      *string
	ReleaseDate    *int16
	ISBN           *string
	AvailableCount int
	TotalCount     int
}

// CreateBookParams carries an add-book request after parsing. Optional
// references are resolved by name (find-or-create) inside the transaction.
type CreateBookParams struct {
	Name        string
	Authors     []string
	Publisher   *string
	Theme       *string
	ISBN        *string
	ReleaseDate *int16
	Copies      int
}

// UpdateBookParams mirrors CreateBookParams minus the copy count; an empty
// Authors slice means "leave existing links untouched".
type UpdateBookParams struct {
	Name        string
	Authors     []string
	Publisher   *string
	Theme       *string
	ISBN        *string
	ReleaseDate *int16
}
