package library

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidInput marks a submission rejected before any request was sent.
var ErrInvalidInput = errors.New("invalid input")

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func requireField(name, value string) error {
	return invalid(validation.Errors{name: validation.Validate(value, validation.Required)}.Filter())
}

func (b NewBook) Validate() error {
	return invalid(validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required),
		validation.Field(&b.Author, validation.Required),
	))
}

func (d BookDraft) Validate() error {
	return invalid(validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Author, validation.Required),
		validation.Field(&d.Amount, validation.Required, validation.Min(1)),
	))
}

func (d UserDraft) Validate() error {
	return invalid(validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
	))
}

// LoanRequest is a submitted (user id, book id) pair of the borrow or return form.
type LoanRequest struct {
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
}

func (r LoanRequest) Validate() error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.BookID, validation.Required),
	))
}
