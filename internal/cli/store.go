package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blogkit/pkg/store"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Create articles from files with YAML front matter",
		Long: `Each file may start with a front matter block:

  ---
  title: Hello World
  status: publish
  format: markdown
  categories: [news]
  ---
  Body text...

The created slug is printed for each file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.openEnv(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close(ctx)

			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				art, err := e.blog.Import(ctx, content)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := write(cmd, art.Slug+"\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())
			ctx := cmd.Context()

			st, err := store.Open(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.Migrate(ctx); err != nil {
				return err
			}
			log.InfoContext(ctx, "migrations applied", slog.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

