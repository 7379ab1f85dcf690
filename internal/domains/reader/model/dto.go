package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReaderRequest is the typed body of POST /api/readers/ and PUT /api/readers/{id}.
type ReaderRequest struct {
	FIO    string `json:"fio"`
	Post   string `json:"dolzhnost"`
	Degree string `json:"uchenaya_stepen"`
}

func (r ReaderRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.FIO,
			validation.Required.Error("ФИО обязательно")),
	)
	if err != nil {
		return ErrFIORequired
	}
	return nil
}

// ReaderResponse is the wire shape of GET /api/readers/{id}. Absent fields
// render as empty strings.
type ReaderResponse struct {
	ID     int64  `json:"id"`
	FIO    string `json:"fio"`
	Post   string `json:"dolzhnost"`
	Degree string `json:"uchenaya_stepen"`
}

func ToReaderResponse(r *Reader) *ReaderResponse {
	resp := &ReaderResponse{
		ID:  r.ID,
		FIO: r.FIO,
	}
	if r.Post != nil {
		resp.Post = *r.Post
	}
	if r.Degree != nil {
		resp.Degree = *r.Degree
	}
	return resp
}
