package library

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {
	t.Parallel()

	plain := NewRenderer(&bytes.Buffer{}, false, 80)
	assert.Equal(t, "[error] Failed to borrow book", plain.StatusLine("Failed to borrow book"))
	assert.Equal(t, "[ok] Book borrowed!", plain.StatusLine("Book borrowed!"))

	colored := NewRenderer(&bytes.Buffer{}, true, 80)
	assert.Equal(t, ansiRed+"Failed to return book"+ansiReset, colored.StatusLine("Failed to return book"))
	assert.Equal(t, ansiGreen+"Book returned!"+ansiReset, colored.StatusLine("Book returned!"))
}

func TestRenderBooks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, false, 60)
	borrowed := 2

	r.Books(BookState{
		ID:   "1",
		Mode: ModeViewing,
		View: &Book{ID: "1", Title: "Dune", Author: "Herbert", Amount: 3, AmountOfBorrowedBooks: &borrowed},
	})
	out := buf.String()
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Herbert")
	assert.Contains(t, out, "Borrowed:")
	assert.Contains(t, out, strings.Repeat("-", 60))
	assert.NotContains(t, out, "[error]")

	buf.Reset()
	r.Books(BookState{ID: "9", Error: "Book not found"})
	assert.Contains(t, buf.String(), "[error] Book not found")

	buf.Reset()
	r.Books(BookState{ID: "1", Mode: ModeEditing, View: &Book{}, Draft: &BookDraft{Title: "T", Author: "A", Amount: 1}})
	assert.Contains(t, buf.String(), `Editing: title="T" author="A" amount=1`)
}

func TestRenderUsers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, false, 80)

	r.Users(UserState{ID: "2", Mode: ModeViewing, View: &User{Name: "Ann", MembershipDate: "2024-01-02"}})
	out := buf.String()
	assert.Contains(t, out, "2024-01-02")
	assert.NotContains(t, out, "Borrowed books:")

	buf.Reset()
	r.Users(UserState{ID: "2", Mode: ModeViewing, View: &User{Name: "Ann", HasBorrowedBooks: true, BorrowedBooks: []string{"Dune", "Emma"}}})
	out = buf.String()
	assert.Contains(t, out, "Borrowed books:")
	assert.Contains(t, out, "1. Dune")
	assert.Contains(t, out, "2. Emma")
}

func TestRenderStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, false, 40)

	r.Stats(StatsState{
		Name:           "Ann",
		Borrowed:       []TitleItem{NewTitleItem("Dune")},
		Statistic:      []StatisticEntry{{Title: strings.Repeat("x", 50), AmountOfBorrowedBooks: 7}},
		DistinctTitles: []TitleItem{NewTitleItem("Emma")},
	})
	out := buf.String()
	assert.Contains(t, out, "Borrowed books for 'Ann':")
	assert.Contains(t, out, strings.Repeat("x", 23)+"...")
	assert.Contains(t, out, "1. Emma")
}

func TestNewRendererClampsWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40, NewRenderer(nil, false, 0).width)
	assert.Equal(t, 120, NewRenderer(nil, false, 500).width)
	assert.Equal(t, 72, NewRenderer(nil, false, 72).width)
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 7, "abcd..."},
		{"abcdef", 2, "ab"},
		{"Преступление и наказание", 26, "Преступление и наказание"},
		{"Преступление и наказание, роман", 26, "Преступление и наказани..."},
		{"Война и мир", 2, "Во"},
	}
	for _, test := range tests {
		got := TruncateString(test.in, test.max)
		assert.Equal(t, test.want, got, test.in)
		assert.True(t, utf8.ValidString(got), test.in)
	}
}

func TestRenderStatsKeepsMultibyteTitlesValid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewRenderer(&buf, false, 40).Stats(StatsState{
		Statistic: []StatisticEntry{{Title: "Преступление и наказание, роман", AmountOfBorrowedBooks: 3}},
	})

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Преступление и наказани...")
}
