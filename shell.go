package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-console/library"
	"library-console/pkg/logger"

	"go.uber.org/zap"
)

// shell is the interactive form loop: each command fills one form and
// submits it, then the affected panel is redrawn.
type shell struct {
	ctx    context.Context
	sc     *bufio.Scanner
	out    io.Writer
	app    *app
	screen *library.Screen
	render *library.Renderer
}

func newShell(ctx context.Context, in io.Reader, out io.Writer, a *app) *shell {
	return &shell{
		ctx:    background(ctx),
		sc:     bufio.NewScanner(in),
		out:    out,
		app:    a,
		screen: a.screen,
		render: a.render,
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  Books: find book, create book, edit book, delete book")
	fmt.Fprintln(s.out, "  Users: find user, create user, edit user, delete user")
	fmt.Fprintln(s.out, "  Circulation: borrow, return")
	fmt.Fprintln(s.out, "  Statistics: search borrowed, statistics, distinct titles")
	fmt.Fprintln(s.out, "  System: show, help, exit")
}

func (s *shell) run() error {
	fmt.Fprintln(s.out, "Welcome to the Book Management System!")
	s.printHelp()

	for {
		fmt.Fprint(s.out, "\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(s.sc.Text()))

		switch cmd {
		case "":
			continue
		case "find book":
			s.handleFindBook()
		case "create book":
			s.handleCreateBook()
		case "edit book":
			s.handleEditBook()
		case "delete book":
			s.handleDeleteBook()
		case "find user":
			s.handleFindUser()
		case "create user":
			s.handleCreateUser()
		case "edit user":
			s.handleEditUser()
		case "delete user":
			s.handleDeleteUser()
		case "borrow":
			s.handleLoan(s.screen.Borrow)
		case "return":
			s.handleLoan(s.screen.Return)
		case "search borrowed":
			s.handleSearchBorrowed()
		case "statistics":
			s.report(s.screen.Stats.FetchStatistic(s.ctx), true)
			s.render.Stats(s.screen.Stats.State())
		case "distinct titles":
			s.report(s.screen.Stats.FetchDistinctTitles(s.ctx), true)
			s.render.Stats(s.screen.Stats.State())
		case "show":
			s.render.Screen(s.screen.Snapshot())
		case "help":
			s.printHelp()
		case "exit", "quit":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' to list the available commands.")
		}
	}

	return s.sc.Err()
}

// prompt reads one field. ok is false once input is exhausted.
func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// promptDefault reads one field, keeping current when the answer is empty.
func (s *shell) promptDefault(label, current string) (string, bool) {
	v, ok := s.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if !ok {
		return "", false
	}
	if v == "" {
		return current, true
	}
	return v, true
}

// report explains client-side rejections; API failures are already part of
// the panel state and only get logged. silent marks failures the screen
// must not surface.
func (s *shell) report(err error, silent bool) {
	switch {
	case err == nil, errors.Is(err, library.ErrSuperseded):
	case errors.Is(err, library.ErrInvalidInput):
		fmt.Fprintf(s.out, "Please fill in the required fields: %v\n", strings.TrimPrefix(err.Error(), library.ErrInvalidInput.Error()+": "))
	case errors.Is(err, library.ErrNothingToEdit):
		fmt.Fprintln(s.out, "Nothing to edit. Find a record first.")
	case errors.Is(err, library.ErrNotEditing):
		fmt.Fprintln(s.out, "Not in edit mode.")
	default:
		msg := "operation failed"
		if silent {
			msg = "silent fetch failed"
		}
		logger.CheckError(err, s.app.logger, msg, zap.Error(err))
	}
}

func (s *shell) handleFindBook() {
	id, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	s.screen.Books.SetID(id)
	s.report(s.screen.Books.Lookup(s.ctx), false)
	s.render.Books(s.screen.Books.State())
}

func (s *shell) handleCreateBook() {
	title, ok := s.prompt("Title: ")
	if !ok {
		return
	}
	author, ok := s.prompt("Author: ")
	if !ok {
		return
	}
	s.screen.Books.SetNew(library.NewBook{Title: title, Author: author})
	s.report(s.screen.Books.Create(s.ctx), false)
	s.render.Books(s.screen.Books.State())
}

func (s *shell) handleEditBook() {
	books := s.screen.Books
	if books.State().Mode != library.ModeEditing {
		if err := books.EnterEditMode(); err != nil {
			s.report(err, false)
			return
		}
	}

	d := *books.State().Draft
	var ok bool
	if d.Title, ok = s.promptDefault("Title", d.Title); !ok {
		books.CancelEdit()
		return
	}
	if d.Author, ok = s.promptDefault("Author", d.Author); !ok {
		books.CancelEdit()
		return
	}
	if d.Amount, ok = s.promptAmount(d.Amount); !ok {
		books.CancelEdit()
		return
	}
	if err := books.SetDraft(d); err != nil {
		s.report(err, false)
		return
	}

	if !s.confirm("Save changes? [y/N]: ") {
		books.CancelEdit()
		s.render.Books(books.State())
		return
	}
	s.report(books.Save(s.ctx), false)
	s.render.Books(books.State())
}

// promptAmount asks until the answer is a whole number.
func (s *shell) promptAmount(current int) (int, bool) {
	for {
		v, ok := s.promptDefault("Amount", strconv.Itoa(current))
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		if err == nil {
			return n, true
		}
		fmt.Fprintf(s.out, "Amount must be a whole number, got %q.\n", v)
	}
}

func (s *shell) handleDeleteBook() {
	s.report(s.screen.Books.Delete(s.ctx), false)
	s.render.Books(s.screen.Books.State())
}

func (s *shell) handleFindUser() {
	id, ok := s.prompt("User ID: ")
	if !ok {
		return
	}
	s.screen.Users.SetID(id)
	s.report(s.screen.Users.Lookup(s.ctx), false)
	s.render.Users(s.screen.Users.State())
}

func (s *shell) handleCreateUser() {
	name, ok := s.prompt("Name: ")
	if !ok {
		return
	}
	s.screen.Users.SetNew(library.UserDraft{Name: name})
	s.report(s.screen.Users.Create(s.ctx), false)
	s.render.Users(s.screen.Users.State())
}

func (s *shell) handleEditUser() {
	users := s.screen.Users
	if users.State().Mode != library.ModeEditing {
		if err := users.EnterEditMode(); err != nil {
			s.report(err, false)
			return
		}
	}

	d := *users.State().Draft
	var ok bool
	if d.Name, ok = s.promptDefault("Name", d.Name); !ok {
		users.CancelEdit()
		return
	}
	if err := users.SetDraft(d); err != nil {
		s.report(err, false)
		return
	}

	if !s.confirm("Save changes? [y/N]: ") {
		users.CancelEdit()
		s.render.Users(users.State())
		return
	}
	s.report(users.Save(s.ctx), false)
	s.render.Users(users.State())
}

func (s *shell) handleDeleteUser() {
	s.report(s.screen.Users.Delete(s.ctx), false)
	s.render.Users(s.screen.Users.State())
}

func (s *shell) handleLoan(form *library.LoanForm) {
	userID, ok := s.prompt("User ID: ")
	if !ok {
		return
	}
	form.SetUserID(userID)

	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	form.SetBookID(bookID)

	s.report(form.Submit(s.ctx), false)
	if st := form.State(); st.Status != "" {
		fmt.Fprintln(s.out, s.render.StatusLine(st.Status))
	}
}

func (s *shell) handleSearchBorrowed() {
	name, ok := s.prompt("User name: ")
	if !ok {
		return
	}
	s.screen.Stats.SetName(name)
	s.report(s.screen.Stats.SearchByName(s.ctx), false)
	s.render.Stats(s.screen.Stats.State())
}

func (s *shell) confirm(label string) bool {
	answer, ok := s.prompt(label)
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
