package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blogkit/internal/config"
	"github.com/dmitrymomot/blogkit/pkg/logger"
)

// app carries flags shared by every subcommand.
type app struct {
	configPath string
	version    string
}

// NewRootCommand builds the blogkit command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "blogkit",
		Short: "Format blog content: paragraphs, HTML filtering, URL escaping, slugs",
		Long: `blogkit converts plain text into paragraph HTML, filters untrusted markup,
escapes URLs, transliterates accents and builds unique slugs.

Text commands read the file named by their argument, or stdin when it is
omitted or "-". Storage commands and serve use the config file and
BLOGKIT_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("BLOGKIT_CONFIG"), "config file (yaml, json or toml)")

	root.AddCommand(
		a.autopCmd(),
		a.filterCmd(),
		a.escURLCmd(),
		a.accentsCmd(),
		a.slugCmd(),
		a.renderCmd(),
		a.importCmd(),
		a.migrateCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute runs the command tree and prints a failure to stderr.
func Execute(ctx context.Context, version string) int {
	root := NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.configPath)
}

// newLogger writes to w, which is stderr for one-shot commands so stdout
// stays clean for piping.
func newLogger(cfg *config.Config, w io.Writer, extractors ...logger.ContextExtractor) *slog.Logger {
	// config.Validate has already checked both values
	level, _ := logger.ParseLevel(cfg.Log.Level)
	format, _ := logger.ParseFormat(cfg.Log.Format)

	sc := cfg.Sentry
	sc.MinLevel = level
	return logger.NewWithSentry(sc,
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithWriter(w),
		logger.WithExtractors(extractors...),
	)
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.version)
			return err
		},
	}
}
