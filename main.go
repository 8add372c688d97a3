package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"library-console/config"
	"library-console/library"
	"library-console/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultWidth = 80

// app is what every command needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	screen *library.Screen
	render *library.Renderer
}

func newApp(cfg *config.Config, l *zap.Logger, backend library.Backend, out io.Writer, color bool, width int) *app {
	render := library.NewRenderer(out, color, width)
	return &app{
		cfg:    cfg,
		logger: l,
		screen: library.NewScreen(backend, render.Notice),
		render: render,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		a          *app
	)

	root := &cobra.Command{
		Use:           "library-console",
		Short:         "Interactive client for the library management API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig(cmd.Flags(), configFile)
			if err != nil {
				return fmt.Errorf("can not get application config: %w", err)
			}

			l, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("can not initialize logger: %w", err)
			}

			out := cmd.OutOrStdout()
			client := library.NewClient(cfg.API.URL, &http.Client{Timeout: cfg.API.Timeout}, l)
			a = newApp(cfg, l, client, out, cfg.UseColor(stdoutIsTerminal), terminalWidth())
			logger.MakeInfo(l, "session started", zap.String("api_url", cfg.API.URL), zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a).run()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a YAML/TOML/JSON config file")
	flags.String("api", "", "base URL of the library API (default http://localhost:8080)")
	flags.String("log-file", "", "file receiving JSON logs; an empty value disables logging")
	flags.String("color", "", "colorize output: auto, always or never")

	root.AddCommand(
		newBookCmd(func() *app { return a }),
		newUserCmd(func() *app { return a }),
		newBorrowedCmd(func() *app { return a }),
		newStatsCmd(func() *app { return a }),
		newTitlesCmd(func() *app { return a }),
	)
	return root
}

func newBookCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "book <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			a.screen.Books.SetID(args[0])
			err := a.screen.Books.Lookup(cmd.Context())
			a.render.Books(a.screen.Books.State())
			return err
		},
	}
}

func newUserCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "user <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			a.screen.Users.SetID(args[0])
			err := a.screen.Users.Lookup(cmd.Context())
			a.render.Users(a.screen.Users.State())
			return err
		},
	}
}

func newBorrowedCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "borrowed <name>",
		Short: "List the books borrowed by a user name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			a.screen.Stats.SetName(args[0])
			err := a.screen.Stats.SearchByName(cmd.Context())
			a.render.Stats(a.screen.Stats.State())
			return err
		},
	}
}

func newStatsCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show borrow counts per title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			logSilent(a.logger, a.screen.Stats.FetchStatistic(cmd.Context()))
			a.render.Stats(a.screen.Stats.State())
			return nil
		},
	}
}

func newTitlesCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "Show distinct borrowed titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			logSilent(a.logger, a.screen.Stats.FetchDistinctTitles(cmd.Context()))
			a.render.Stats(a.screen.Stats.State())
			return nil
		},
	}
}

// logSilent records failures the screen deliberately does not show.
func logSilent(l *zap.Logger, err error) {
	logger.CheckError(err, l, "silent fetch failed", zap.Error(err))
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func terminalWidth() int {
	if !stdoutIsTerminal() {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func background(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
