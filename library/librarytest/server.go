// Package librarytest runs an in-process library API backed by SQLite, for
// tests that exercise the HTTP client and the interactive screen end to end.
package librarytest

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is one call the server received.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

type bookPayload struct {
	Title                 string `json:"title"`
	Author                string `json:"author"`
	Amount                int    `json:"amount"`
	AmountOfBorrowedBooks int    `json:"amount_of_borrowed_books"`
}

type titlePayload struct {
	Title string `json:"title"`
}

type userPayload struct {
	Name                  string         `json:"name"`
	MembershipDate        int64          `json:"membership_date"`
	BorrowedBooks         []titlePayload `json:"borrowed_books"`
	NumberOfBorrowedBooks int            `json:"number_of_borrowed_books"`
}

type statisticPayload struct {
	Title                 string `json:"title"`
	AmountOfBorrowedBooks int64  `json:"amount_of_borrowed_books"`
}

// Server is a running stand-in API.
type Server struct {
	*httptest.Server
	DB *Database

	// Now stamps the membership date of created users.
	Now func() time.Time

	mu       sync.Mutex
	failures map[string]int
	requests []Request
}

// NewServer starts a server on a fresh database that is torn down with t.
func NewServer(t testing.TB) *Server {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}

	s := &Server{
		DB:       db,
		Now:      time.Now,
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(func() {
		s.Close()
		db.Close()
	})
	return s
}

// Fail makes every later request for method and path answer with code.
func (s *Server) Fail(method, path string, code int) {
	s.mu.Lock()
	s.failures[method+" "+path] = code
	s.mu.Unlock()
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route("/book", func(r chi.Router) {
		r.Post("/create", s.handleCreateBook)
		r.Get("/{id}", s.handleGetBook)
		r.Put("/{id}", s.handleUpdateBook)
		r.Delete("/{id}", s.handleDeleteBook)
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/borrowing", func(r chi.Router) {
		r.Post("/user/{userId}/book/{bookId}", s.handleBorrow)
		r.Delete("/return/user/{userId}/book/{bookId}", s.handleReturn)
		r.Post("/name", s.handleBorrowedByName)
		r.Get("/statistic", s.handleStatistic)
		r.Get("/titles/distinct", s.handleDistinctTitles)
	})

	return r
}

// record keeps a copy of each request and applies forced failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		code, fail := s.failures[r.Method+" "+r.URL.EscapedPath()]
		s.mu.Unlock()

		if fail {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req titleAuthor
	if !decode(w, r, &req) {
		return
	}
	if req.Title == "" || req.Author == "" {
		http.Error(w, "title and author are required", http.StatusBadRequest)
		return
	}

	id, err := s.DB.AddBook(req.Title, req.Author)
	if err != nil {
		writeError(w, err)
		return
	}
	book, err := s.DB.GetBook(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookPayload(book))
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	book, err := s.DB.GetBook(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookPayload(book))
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req bookPayload
	if !decode(w, r, &req) {
		return
	}
	if err := s.DB.UpdateBook(id, req.Title, req.Author, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	book, err := s.DB.GetBook(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookPayload(book))
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.DB.DeleteBook(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req namePayload
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	id, err := s.DB.AddUser(req.Name, s.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := s.DB.GetUser(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserPayload(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.DB.GetUser(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayload(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req namePayload
	if !decode(w, r, &req) {
		return
	}
	if err := s.DB.UpdateUser(id, req.Name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.DB.DeleteUser(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Circulation
// ---------------------------------------------------------------------------

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookId")
	if !ok {
		return
	}
	if err := s.DB.Borrow(userID, bookID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookId")
	if !ok {
		return
	}
	if err := s.DB.Return(userID, bookID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleBorrowedByName(w http.ResponseWriter, r *http.Request) {
	var req namePayload
	if !decode(w, r, &req) {
		return
	}
	titles, err := s.DB.BorrowedTitles(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTitlePayloads(titles))
}

func (s *Server) handleStatistic(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.DB.Statistic()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]statisticPayload, 0, len(stats))
	for _, st := range stats {
		out = append(out, statisticPayload{Title: st.Title, AmountOfBorrowedBooks: st.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDistinctTitles answers with bare strings rather than title objects.
func (s *Server) handleDistinctTitles(w http.ResponseWriter, _ *http.Request) {
	titles, err := s.DB.DistinctTitles()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, titles)
}

// ---------------------------------------------------------------------------
// Encoding helpers
// ---------------------------------------------------------------------------

type titleAuthor struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type namePayload struct {
	Name string `json:"name"`
}

func toBookPayload(b *BookRow) bookPayload {
	return bookPayload{
		Title:                 b.Title,
		Author:                b.Author,
		Amount:                b.Amount,
		AmountOfBorrowedBooks: b.AmountOfBorrowedBooks,
	}
}

func toUserPayload(u *UserRow) userPayload {
	return userPayload{
		Name:                  u.Name,
		MembershipDate:        u.MembershipDate.UnixMilli(),
		BorrowedBooks:         toTitlePayloads(u.BorrowedTitles),
		NumberOfBorrowedBooks: u.NumberOfBorrowedBooks,
	}
}

func toTitlePayloads(titles []string) []titlePayload {
	out := make([]titlePayload, 0, len(titles))
	for _, t := range titles {
		out = append(out, titlePayload{Title: t})
	}
	return out
}

func readBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(data))
	return string(data), nil
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrLimitExceeded), errors.Is(err, ErrBorrowed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
