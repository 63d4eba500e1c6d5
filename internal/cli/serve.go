package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blogkit/internal/api"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.openEnv(ctx, cmd.ErrOrStderr(), api.RequestIDExtractor())
			if err != nil {
				return err
			}

			srv := e.cfg.Server
			if addr != "" {
				srv.Address = addr
			}

			opts := append(e.checks(),
				api.WithLogger(e.log),
				api.WithDefaultLocale(e.cfg.Content.Locale),
				api.WithMaxBodyBytes(srv.MaxBodyBytes),
				api.WithRequestTimeout(srv.WriteTimeout),
			)
			return api.Serve(ctx, api.NewRouter(e.blog, e.renderer, opts...), api.ServerConfig{
				Address:         srv.Address,
				ReadTimeout:     srv.ReadTimeout,
				WriteTimeout:    srv.WriteTimeout,
				ShutdownTimeout: srv.ShutdownTimeout,
				Logger:          e.log,
				ShutdownHooks:   []func(context.Context) error{e.shutdown},
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.address")
	return cmd
}
