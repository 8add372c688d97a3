package library

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// IsFailure classifies a status message for styling: failures mention "Failed".
func IsFailure(msg string) bool {
	return strings.Contains(msg, "Failed")
}

// LoanState is a snapshot of a borrow or return form.
type LoanState struct {
	UserID string
	BookID string
	Status string
}

// LoanForm is one (user id, book id) form with its status line. The status
// always describes the last submitted pair, so typing clears it.
type LoanForm struct {
	mu      sync.Mutex
	submit  func(ctx context.Context, userID, bookID string) error
	verb    string
	success string
	failure string

	req    LoanRequest
	status string
}

// NewBorrowForm builds the form that lends a book to a user.
func NewBorrowForm(backend Backend) *LoanForm {
	return &LoanForm{
		submit:  backend.Borrow,
		verb:    "borrow",
		success: "Book borrowed!",
		failure: "Failed to borrow book",
	}
}

// NewReturnForm builds the form that takes a book back from a user.
func NewReturnForm(backend Backend) *LoanForm {
	return &LoanForm{
		submit:  backend.Return,
		verb:    "return",
		success: "Book returned!",
		failure: "Failed to return book",
	}
}

func (f *LoanForm) SetUserID(id string) {
	f.mu.Lock()
	f.req.UserID = id
	f.status = ""
	f.mu.Unlock()
}

func (f *LoanForm) SetBookID(id string) {
	f.mu.Lock()
	f.req.BookID = id
	f.status = ""
	f.mu.Unlock()
}

func (f *LoanForm) State() LoanState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return LoanState{UserID: f.req.UserID, BookID: f.req.BookID, Status: f.status}
}

// Submit sends the current pair. Both ids are cleared on success and kept
// for another try on failure.
func (f *LoanForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	req := f.req
	if err := req.Validate(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.status = ""
	f.mu.Unlock()

	err := f.submit(ctx, req.UserID, req.BookID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = f.failure
		return fmt.Errorf("%s book %q for user %q: %w", f.verb, req.BookID, req.UserID, err)
	}
	f.status = f.success
	f.req = LoanRequest{}
	return nil
}
