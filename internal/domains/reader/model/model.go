package model

// Reader is a registered library user. FIO (full name) is globally unique.
type Reader struct {
	ID      int64   `json:"id" db:"reader_id"`
	FIO     string  `json:"fio" db:"fio"`
	Post    *string `json:"dolzhnost,omitempty" db:"dolzhnost"`
	Degree  *string `json:"uchenaya_stepen,omitempty" db:"uchenaya_stepen"`
}

// ReaderSearchRow is one row of the readers listing: profile fields plus the
// LEFT-JOINed count of loans with no return date. Readers without active
// loans appear with a count of 0.
type ReaderSearchRow struct {
	ID          int64
	FIO         string
	Post        *string
	Degree      *string
	ActiveLoans int
}

// ReaderParams carries a validated create/update request. Blank optional
// fields are stored as NULL.
type ReaderParams struct {
	FIO    string
	Post   *string
	Degree *string
}
