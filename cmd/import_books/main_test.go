package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"library-console/library"
	"library-console/library/librarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportBooks(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	client := library.NewClient(srv.URL, srv.Client(), zap.NewNop())

	csvData := strings.Join([]string{
		"title,author",
		"Dune, Frank Herbert",
		"Emma,Jane Austen",
		"Orphan,",
		"Dune,Frank Herbert",
	}, "\n")

	var out bytes.Buffer
	imported, errorCount, err := importBooks(context.Background(), strings.NewReader(csvData), &out, client, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, imported, 3)
	assert.Equal(t, 1, errorCount)
	assert.Contains(t, out.String(), "Importing: Orphan by ... ERROR")

	dune, err := srv.DB.GetBook(1)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", dune.Author)
	assert.Equal(t, 2, dune.Amount)
}

func TestImportBooksReportsServerErrors(t *testing.T) {
	t.Parallel()

	srv := librarytest.NewServer(t)
	srv.Fail("POST", "/book/create", 503)
	client := library.NewClient(srv.URL, srv.Client(), zap.NewNop())

	var out bytes.Buffer
	imported, errorCount, err := importBooks(context.Background(), strings.NewReader("Dune,Herbert\n"), &out, client, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, imported)
	assert.Equal(t, 1, errorCount)
	assert.Contains(t, out.String(), "unexpected status code: 503")
}

func TestImportCommand(t *testing.T) {
	srv := librarytest.NewServer(t)
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("Dune,Herbert\nEmma,Austen\n"), 0o644))

	var out bytes.Buffer
	cmd := newImportCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--api", srv.URL, "--log-file", "", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Successfully imported: 2 books")
	assert.Contains(t, out.String(), "Imported books:")
}
