package library_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"library-console/library"
	"library-console/library/librarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func initClientTest(t *testing.T) (context.Context, *librarytest.Server, *library.Client) {
	t.Helper()
	srv := librarytest.NewServer(t)
	client := library.NewClient(srv.URL+"/", srv.Client(), zap.NewNop())
	return context.Background(), srv, client
}

func TestClientBookRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)

	require.NoError(t, c.CreateBook(ctx, library.NewBook{Title: "Dune", Author: "Herbert"}))
	book, err := c.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, 1, book.Amount)
	require.NotNil(t, book.AmountOfBorrowedBooks)
	assert.Zero(t, *book.AmountOfBorrowedBooks)

	require.NoError(t, c.UpdateBook(ctx, "1", library.BookDraft{Title: "Dune", Author: "F. Herbert", Amount: 4}))
	book, err = c.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "F. Herbert", book.Author)
	assert.Equal(t, 4, book.Amount)

	require.NoError(t, c.DeleteBook(ctx, "1"))
	_, err = c.GetBook(ctx, "1")

	var statusErr *library.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	reqs := srv.Requests()
	require.Len(t, reqs, 6)
	assert.Equal(t, librarytest.Request{
		Method:      http.MethodPost,
		Path:        "/book/create",
		ContentType: "application/json",
		Body:        `{"title":"Dune","author":"Herbert"}`,
	}, reqs[0])
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Equal(t, "/book/1", reqs[1].Path)
	assert.Empty(t, reqs[1].ContentType)
	assert.Empty(t, reqs[1].Body)
	assert.JSONEq(t, `{"title":"Dune","author":"F. Herbert","amount":4}`, reqs[2].Body)
	assert.Equal(t, http.MethodPut, reqs[2].Method)
	assert.Equal(t, http.MethodDelete, reqs[4].Method)
	assert.Empty(t, reqs[4].ContentType)
}

func TestClientUser(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)
	srv.Now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC) }

	require.NoError(t, c.CreateUser(ctx, library.UserDraft{Name: "Ann"}))
	require.NoError(t, c.CreateBook(ctx, library.NewBook{Title: "Dune", Author: "Herbert"}))
	require.NoError(t, c.Borrow(ctx, "1", "1"))

	user, err := c.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "2024-01-02", user.MembershipDate)
	assert.True(t, user.HasBorrowedBooks)
	assert.Equal(t, []string{"Dune"}, user.BorrowedBooks)
	require.NotNil(t, user.BorrowedBooksCount)
	assert.Equal(t, 1, *user.BorrowedBooksCount)

	require.NoError(t, c.UpdateUser(ctx, "1", library.UserDraft{Name: "Anna"}))
	require.Error(t, c.DeleteUser(ctx, "1"))

	require.NoError(t, c.Return(ctx, "1", "1"))
	require.NoError(t, c.DeleteUser(ctx, "1"))

	var paths []string
	for _, r := range srv.Requests() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Contains(t, paths, "POST /borrowing/user/1/book/1")
	assert.Contains(t, paths, "DELETE /borrowing/return/user/1/book/1")
}

func TestClientBorrowingQueries(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)
	require.NoError(t, c.CreateUser(ctx, library.UserDraft{Name: "Ann"}))
	require.NoError(t, c.CreateBook(ctx, library.NewBook{Title: "Dune", Author: "Herbert"}))
	require.NoError(t, c.CreateBook(ctx, library.NewBook{Title: "Emma", Author: "Austen"}))
	require.NoError(t, c.Borrow(ctx, "1", "1"))
	require.NoError(t, c.Borrow(ctx, "1", "2"))

	borrowed, err := c.BorrowedByName(ctx, "Ann")
	require.NoError(t, err)
	require.Len(t, borrowed, 2)
	assert.Equal(t, "Dune", borrowed[0].String())

	last := srv.Requests()[len(srv.Requests())-1]
	assert.Equal(t, "application/json", last.ContentType)
	assert.JSONEq(t, `{"name":"Ann"}`, last.Body)

	stats, err := c.Statistic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []library.StatisticEntry{
		{Title: "Dune", AmountOfBorrowedBooks: 1},
		{Title: "Emma", AmountOfBorrowedBooks: 1},
	}, stats)

	titles, err := c.DistinctTitles(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "Emma", titles[1].String())

	_, err = c.BorrowedByName(ctx, "Nobody")
	var statusErr *library.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClientEscapesIDs(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)
	_, err := c.GetBook(ctx, "a/b")

	var statusErr *library.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "/book/a%2Fb", srv.Requests()[0].Path)
}

func TestClientForcedFailure(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)
	srv.Fail(http.MethodGet, "/borrowing/statistic", http.StatusInternalServerError)

	_, err := c.Statistic(ctx)
	var statusErr *library.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "GET /borrowing/statistic: unexpected status code: 500", statusErr.Error())
}

func TestClientNetworkError(t *testing.T) {
	t.Parallel()

	ctx, srv, c := initClientTest(t)
	srv.Close()

	_, err := c.GetBook(ctx, "1")
	require.Error(t, err)

	var statusErr *library.StatusError
	assert.False(t, errors.As(err, &statusErr))
}
