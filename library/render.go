package library

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// Renderer draws panel snapshots as text.
type Renderer struct {
	w     io.Writer
	color bool
	width int
}

// NewRenderer writes to w. color enables ANSI styling; width sizes the rules
// and is clamped to a sane minimum.
func NewRenderer(w io.Writer, color bool, width int) *Renderer {
	if width < 40 {
		width = 40
	}
	if width > 120 {
		width = 120
	}
	return &Renderer{w: w, color: color, width: width}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) heading(title string) {
	fmt.Fprintf(r.w, "\n%s\n%s\n", r.paint(ansiBold, title), strings.Repeat("-", r.width))
}

func (r *Renderer) errorLine(msg string) {
	if msg == "" {
		return
	}
	if r.color {
		fmt.Fprintln(r.w, r.paint(ansiRed, msg))
		return
	}
	fmt.Fprintf(r.w, "[error] %s\n", msg)
}

// StatusLine styles a borrow/return message as success or failure.
func (r *Renderer) StatusLine(msg string) string {
	if IsFailure(msg) {
		if r.color {
			return r.paint(ansiRed, msg)
		}
		return "[error] " + msg
	}
	if r.color {
		return r.paint(ansiGreen, msg)
	}
	return "[ok] " + msg
}

// Notice prints a one-off confirmation.
func (r *Renderer) Notice(msg string) {
	fmt.Fprintf(r.w, "%s\n", r.paint(ansiGreen, "* "+msg))
}

func (r *Renderer) Screen(s Snapshot) {
	r.Books(s.Books)
	r.Users(s.Users)
	r.Circulation(s.Borrow, s.Return)
	r.Stats(s.Stats)
}

func (r *Renderer) Books(s BookState) {
	r.heading("Book by ID")
	fmt.Fprintf(r.w, "ID: %s\n", orDash(s.ID))
	r.errorLine(s.Error)

	switch s.Mode {
	case ModeViewing:
		b := s.View
		fmt.Fprintf(r.w, "  %s\n", r.paint(ansiBold, b.Title))
		fmt.Fprintf(r.w, "  %-12s %s\n", "Author:", b.Author)
		fmt.Fprintf(r.w, "  %-12s %d\n", "Available:", b.Amount)
		if b.AmountOfBorrowedBooks != nil {
			fmt.Fprintf(r.w, "  %-12s %d\n", "Borrowed:", *b.AmountOfBorrowedBooks)
		}
	case ModeEditing:
		d := s.Draft
		fmt.Fprintf(r.w, "  Editing: title=%q author=%q amount=%d\n", d.Title, d.Author, d.Amount)
	}

	if s.New.Title != "" || s.New.Author != "" {
		fmt.Fprintf(r.w, "New book: title=%q author=%q\n", s.New.Title, s.New.Author)
	}
}

func (r *Renderer) Users(s UserState) {
	r.heading("User by ID")
	fmt.Fprintf(r.w, "ID: %s\n", orDash(s.ID))
	r.errorLine(s.Error)

	switch s.Mode {
	case ModeViewing:
		u := s.View
		fmt.Fprintf(r.w, "  %s\n", r.paint(ansiBold, u.Name))
		fmt.Fprintf(r.w, "  %-22s %s\n", "Membership date:", orDash(u.MembershipDate))
		if u.HasBorrowedBooks {
			fmt.Fprintf(r.w, "  Borrowed books:\n")
			r.list("    ", u.BorrowedBooks)
		}
		if u.BorrowedBooksCount != nil {
			fmt.Fprintf(r.w, "  %-22s %d\n", "Borrowed books count:", *u.BorrowedBooksCount)
		}
	case ModeEditing:
		fmt.Fprintf(r.w, "  Editing: name=%q\n", s.Draft.Name)
	}

	if s.New.Name != "" {
		fmt.Fprintf(r.w, "New user: name=%q\n", s.New.Name)
	}
}

func (r *Renderer) Circulation(borrow, ret LoanState) {
	r.heading("Borrow/Return")
	r.loan("Borrow", borrow)
	r.loan("Return", ret)
}

func (r *Renderer) loan(label string, s LoanState) {
	fmt.Fprintf(r.w, "%-7s user=%s book=%s\n", label+":", orDash(s.UserID), orDash(s.BookID))
	if s.Status != "" {
		fmt.Fprintf(r.w, "        %s\n", r.StatusLine(s.Status))
	}
}

func (r *Renderer) Stats(s StatsState) {
	r.heading("Statistics & Search")
	r.errorLine(s.SearchError)

	if len(s.Borrowed) > 0 {
		fmt.Fprintf(r.w, "Borrowed books for '%s':\n", s.Name)
		r.list("  ", titles(s.Borrowed))
	}

	if len(s.Statistic) > 0 {
		fmt.Fprintln(r.w, "Borrowed books statistics:")
		titleWidth := r.width - 14
		for _, e := range s.Statistic {
			fmt.Fprintf(r.w, "  %-*s %10d\n", titleWidth, TruncateString(e.Title, titleWidth), e.AmountOfBorrowedBooks)
		}
	}

	if len(s.DistinctTitles) > 0 {
		fmt.Fprintln(r.w, "Distinct borrowed titles:")
		r.list("  ", titles(s.DistinctTitles))
	}
}

func (r *Renderer) list(indent string, items []string) {
	for i, item := range items {
		fmt.Fprintf(r.w, "%s%s. %s\n", indent, strconv.Itoa(i+1), item)
	}
}

func titles(items []TitleItem) []string {
	return lo.Map(items, func(t TitleItem, _ int) string { return t.String() })
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// TruncateString shortens s to at most maxLength runes, marking the cut
// with "..." when there is room for it.
func TruncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	r := []rune(s)
	if maxLength <= 3 {
		return string(r[:max(maxLength, 0)])
	}
	return string(r[:maxLength-3]) + "..."
}
