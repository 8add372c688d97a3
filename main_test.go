package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"library-console/config"
	"library-console/library"
	"library-console/library/librarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// runShell feeds script to a fresh shell talking to srv and returns the output.
func runShell(t *testing.T, srv *librarytest.Server, script ...string) string {
	t.Helper()

	_, out := runShellApp(t, srv, script...)
	return out
}

func runShellApp(t *testing.T, srv *librarytest.Server, script ...string) (*app, string) {
	t.Helper()

	var out bytes.Buffer
	client := library.NewClient(srv.URL, srv.Client(), zap.NewNop())
	a := newApp(&config.Config{}, zap.NewNop(), client, &out, false, 80)

	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, newShell(context.Background(), in, &out, a).run())
	return a, out.String()
}

func TestShellCreateThenFindBook(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv,
		"create book", "Dune", "Herbert",
		"find book", "1",
		"exit",
	)

	assert.Contains(t, out, "Book created!")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Herbert")
	assert.Contains(t, out, "Available:   1")
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "[error]")
}

func TestShellFindMissingBook(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv, "find book", "404", "exit")
	assert.Contains(t, out, "[error] Book not found")
}

func TestShellBorrowWithoutBookIDSendsNothing(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv, "borrow", "1", "", "exit")

	assert.Contains(t, out, "Please fill in the required fields")
	assert.Empty(t, srv.Requests())
}

func TestShellBorrowAndReturn(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv,
		"create user", "Ann",
		"create book", "Dune", "Herbert",
		"borrow", "1", "1",
		"borrow", "1", "1",
		"search borrowed", "Ann",
		"return", "1", "1",
		"exit",
	)

	assert.Contains(t, out, "User created!")
	assert.Contains(t, out, "[ok] Book borrowed!")
	assert.Contains(t, out, "[error] Failed to borrow book")
	assert.Contains(t, out, "Borrowed books for 'Ann':")
	assert.Contains(t, out, "[ok] Book returned!")
}

func TestShellEditBook(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv,
		"edit book",
		"create book", "Dune", "Herbert",
		"find book", "1",
		"edit book", "", "Frank Herbert", "5", "y",
		"exit",
	)

	assert.Contains(t, out, "Nothing to edit.")

	book, err := srv.DB.GetBook(1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, 5, book.Amount)
}

func TestShellEditCancelled(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	runShell(t, srv,
		"create user", "Ann",
		"find user", "1",
		"edit user", "Anna", "n",
		"exit",
	)

	user, err := srv.DB.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
}

func TestShellEditRepromptsBadAmount(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv,
		"create book", "Dune", "Herbert",
		"find book", "1",
		"edit book", "", "", "lots", "3", "y",
		"exit",
	)

	assert.Contains(t, out, `Amount must be a whole number, got "lots".`)
	assert.NotContains(t, out, "cannot be blank")

	book, err := srv.DB.GetBook(1)
	require.NoError(t, err)
	assert.Equal(t, 3, book.Amount)
}

func TestShellEditInterruptedByEndOfInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script []string
		mode   func(a *app) library.Mode
	}{
		{
			name:   "book",
			script: []string{"create book", "Dune", "Herbert", "find book", "1", "edit book", "Dune II"},
			mode:   func(a *app) library.Mode { return a.screen.Books.State().Mode },
		},
		{
			name:   "user",
			script: []string{"create user", "Ann", "find user", "1", "edit user"},
			mode:   func(a *app) library.Mode { return a.screen.Users.State().Mode },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			srv := librarytest.NewServer(t)
			a, _ := runShellApp(t, srv, test.script...)
			assert.Equal(t, library.ModeViewing, test.mode(a))
		})
	}
}

func TestShellSearchErrors(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	srv.Fail(http.MethodGet, "/borrowing/statistic", http.StatusInternalServerError)

	out := runShell(t, srv,
		"statistics",
		"search borrowed", "Nobody",
		"exit",
	)

	assert.Contains(t, out, "[error] Not found or error")
	assert.Equal(t, 1, strings.Count(out, "[error]"))
}

func TestShellUnknownCommand(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	out := runShell(t, srv, "dance")
	assert.Contains(t, out, "Unknown command.")
}

func TestRootCommandSubcommands(t *testing.T) {
	srv := librarytest.NewServer(t)
	_, err := srv.DB.AddBook("Dune", "Herbert")
	require.NoError(t, err)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetIn(strings.NewReader("exit\n"))
		cmd.SetArgs(append([]string{"--api", srv.URL, "--log-file", "", "--color", "never"}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("book", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")

	out, err = run("book", "2")
	require.Error(t, err)
	assert.Contains(t, out, "[error] Book not found")

	_, err = run("stats")
	require.NoError(t, err)

	out, err = run()
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye!")

	_, err = run("--api", "not a url", "titles")
	require.Error(t, err)
}
