package library

import (
	"bytes"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Book is the last book record fetched from the API.
// ID is the lookup key the user typed; the API does not echo it back.
type Book struct {
	ID                    string `json:"-"`
	Title                 string `json:"title"`
	Author                string `json:"author"`
	Amount                int    `json:"amount"`
	AmountOfBorrowedBooks *int   `json:"amount_of_borrowed_books,omitempty"`
}

// BookDraft holds the edit-form fields of a book.
type BookDraft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Amount int    `json:"amount"`
}

// NewBook holds the create-form fields of a book. The API defaults the amount.
type NewBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// User is the canonical shape of a fetched patron record.
type User struct {
	ID             string
	Name           string
	MembershipDate string

	// HasBorrowedBooks reports whether the API sent a borrowed book list at all.
	HasBorrowedBooks bool
	BorrowedBooks    []string

	BorrowedBooksCount *int
}

// UserDraft holds the name field used by both the create and the edit form.
type UserDraft struct {
	Name string `json:"name"`
}

// StatisticEntry is one row of the per-title borrow statistics.
type StatisticEntry struct {
	Title                 string `json:"title"`
	AmountOfBorrowedBooks int64  `json:"amount_of_borrowed_books"`
}

// TitleItem is a list element that is either an object with a title or a bare value.
type TitleItem struct {
	raw   jsoniter.RawMessage
	title *string
}

// NewTitleItem builds an object-shaped item carrying title.
func NewTitleItem(title string) TitleItem {
	return TitleItem{title: &title}
}

// UnmarshalJSON keeps the raw value and extracts a title when the value is an object.
func (t *TitleItem) UnmarshalJSON(data []byte) error {
	t.raw = append(t.raw[:0], data...)
	t.title = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var obj struct {
		Title *string `json:"title"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	t.title = obj.Title
	return nil
}

// String renders the title, or the bare value when the item has no title.
func (t TitleItem) String() string {
	if t.title != nil {
		return *t.title
	}
	var s string
	if err := json.Unmarshal(t.raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(t.raw))
}

// userRecord accepts every field spelling the API has been seen to use.
type userRecord struct {
	Name string `json:"name"`

	MembershipDate      jsoniter.RawMessage `json:"membershipDate"`
	MembershipDateSnake jsoniter.RawMessage `json:"membership_date"`

	BorrowedBooks      *[]TitleItem `json:"borrowedBooks"`
	BorrowedBooksSnake *[]TitleItem `json:"borrowed_books"`

	BorrowedBooksCount         *int `json:"borrowedBooksCount"`
	BorrowedBooksCountSnake    *int `json:"borrowed_books_count"`
	NumberOfBorrowedBooks      *int `json:"numberOfBorrowedBooks"`
	NumberOfBorrowedBooksSnake *int `json:"number_of_borrowed_books"`
}

// decodeUser normalizes a user payload into the canonical User shape.
func decodeUser(id string, data []byte) (*User, error) {
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	u := &User{
		ID:             id,
		Name:           rec.Name,
		MembershipDate: membershipDate(rec.MembershipDate, rec.MembershipDateSnake),
	}

	books := rec.BorrowedBooks
	if books == nil {
		books = rec.BorrowedBooksSnake
	}
	if books != nil {
		u.HasBorrowedBooks = true
		u.BorrowedBooks = make([]string, 0, len(*books))
		for _, b := range *books {
			u.BorrowedBooks = append(u.BorrowedBooks, b.String())
		}
	}

	for _, c := range []*int{
		rec.BorrowedBooksCount,
		rec.BorrowedBooksCountSnake,
		rec.NumberOfBorrowedBooks,
		rec.NumberOfBorrowedBooksSnake,
	} {
		if c != nil {
			u.BorrowedBooksCount = c
			break
		}
	}

	return u, nil
}

// membershipDate picks the first non-null spelling. Numbers are epoch milliseconds.
func membershipDate(candidates ...jsoniter.RawMessage) string {
	for _, raw := range candidates {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var ms int64
		if err := json.Unmarshal(raw, &ms); err == nil {
			return time.UnixMilli(ms).UTC().Format(time.DateOnly)
		}
		return string(raw)
	}
	return ""
}
