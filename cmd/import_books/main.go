package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"library-console/config"
	"library-console/library"
	"library-console/pkg/logger"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newImportCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "import_books <file.csv>",
		Short:        "Create one book per title,author row of a CSV file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(cmd.Flags(), configFile)
			if err != nil {
				return fmt.Errorf("can not get application config: %w", err)
			}
			l, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("can not initialize logger: %w", err)
			}
			defer func() { _ = l.Sync() }()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			client := library.NewClient(cfg.API.URL, &http.Client{Timeout: cfg.API.Timeout}, l)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Importing books from %s into %s...\n", args[0], cfg.API.URL)
			imported, errorCount, err := importBooks(cmd.Context(), f, out, client, l)
			if err != nil {
				return err
			}

			printSummary(out, imported, errorCount)
			if errorCount > 0 {
				return fmt.Errorf("%d rows failed", errorCount)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to a YAML/TOML/JSON config file")
	flags.String("api", "", "base URL of the library API (default http://localhost:8080)")
	flags.String("log-file", "", "file receiving JSON logs; an empty value disables logging")
	return cmd
}

// importBooks creates a book for every row of r. A header row starting with
// "title" is skipped. Rows that fail are counted and the import goes on.
func importBooks(ctx context.Context, r io.Reader, out io.Writer, backend library.Backend, l *zap.Logger) ([]library.NewBook, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		imported   []library.NewBook
		errorCount int
		line       int
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, errorCount, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "title") {
			continue
		}

		book := library.NewBook{}
		if len(record) > 0 {
			book.Title = strings.TrimSpace(record[0])
		}
		if len(record) > 1 {
			book.Author = strings.TrimSpace(record[1])
		}

		fmt.Fprintf(out, "Importing: %s by %s... ", book.Title, book.Author)

		if err := book.Validate(); err != nil {
			fmt.Fprintf(out, "ERROR - line %d: %v\n", line, err)
			errorCount++
			continue
		}
		if err := backend.CreateBook(ctx, book); err != nil {
			logger.CheckError(err, l, "import row failed", zap.Int("line", line), zap.Error(err))
			fmt.Fprintf(out, "ERROR - %v\n", err)
			errorCount++
			continue
		}

		fmt.Fprintln(out, "SUCCESS")
		imported = append(imported, book)
	}

	return imported, errorCount, nil
}

func printSummary(out io.Writer, imported []library.NewBook, errorCount int) {
	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d books\n", len(imported))
	fmt.Fprintf(out, "Errors: %d\n", errorCount)

	if len(imported) == 0 {
		return
	}

	fmt.Fprintln(out, "\nImported books:")
	fmt.Fprintf(out, "%-50s %-30s\n", "Title", "Author")
	fmt.Fprintln(out, strings.Repeat("-", 81))
	rows := lo.Map(imported, func(b library.NewBook, _ int) string {
		return fmt.Sprintf("%-50s %-30s", library.TruncateString(b.Title, 50), library.TruncateString(b.Author, 30))
	})
	fmt.Fprintln(out, strings.Join(rows, "\n"))
}
