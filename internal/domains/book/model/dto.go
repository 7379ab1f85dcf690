package model

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

// BookRequest is the typed body of POST /api/books/ and PUT /api/books/{id}.
// The numeric fields accept a JSON number or a numeric string; non-numeric
// input coalesces to absent (the documented contract of the API).
type BookRequest struct {
	BookName      string             `json:"book_name"`
	Authors       string             `json:"authors"`
	Publisher     string             `json:"publisher"`
	ISBN          string             `json:"isbn"`
	ReleaseDate   shared.FlexibleInt `json:"release_date"`
	Theme         string             `json:"theme"`
	NumberOfBooks shared.FlexibleInt `json:"number_of_books"`
}

func (r BookRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.BookName,
			validation.Required.Error("Название книги обязательно")),
	)
	if err != nil {
		return ErrBookNameRequired
	}
	return nil
}

// SplitAuthors turns the comma-separated author field into trimmed,
// non-empty names. "A, B, B" yields [A B B]; deduplication happens at the
// association table's composite key.
func SplitAuthors(authors string) []string {
	if strings.TrimSpace(authors) == "" {
		return nil
	}

	parts := strings.Split(authors, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// BookDetailResponse is the wire shape of GET /api/books/{id}. Absent
// references render as empty strings, matching the original contract.
type BookDetailResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Authors     string `json:"authors"`
	Publisher   string `json:"publisher"`
	ISBN        string `json:"isbn"`
	ReleaseDate string `json:"release_date"`
	Theme       string `json:"theme"`
}

func ToBookDetailResponse(d *BookDetail) *BookDetailResponse {
	resp := &BookDetailResponse{
		ID:      d.ID,
		Name:    d.Name,
		Authors: strings.Join(d.Authors, ", "),
	}
	if d.Publisher != nil {
		resp.Publisher = *d.Publisher
	}
	if d.ISBN != nil {
		resp.ISBN = *d.ISBN
	}
	if d.ReleaseDate != nil {
		resp.ReleaseDate = strconv.Itoa(int(*d.ReleaseDate))
	}
	if d.Theme != nil {
		resp.Theme = *d.Theme
	}
	return resp
}

// CopyResponse is one physical copy in GET /api/books/{id}/copies.
type CopyResponse struct {
	ID              int64  `json:"id"`
	State           string `json:"state"`
	AcquisitionDate string `json:"acquisition_date"`
	WriteOffReason  string `json:"write_off_reason,omitempty"`
}

func ToCopyResponse(item BookItem) CopyResponse {
	resp := CopyResponse{
		ID:              item.ID,
		State:           string(item.State),
		AcquisitionDate: item.AcquisitionDate.Format("2006-01-02"),
	}
	if item.WriteOffReason != nil {
		resp.WriteOffReason = *item.WriteOffReason
	}
	return resp
}
