package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/server"
	"github.com/matzehuels/jsonscope/pkg/store"
)

// serveOpts holds options for the serve command.
type serveOpts struct {
	addr    string
	noCache bool
	noStore bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the jsonscope HTTP API",
		Long: `Serve the jsonscope HTTP API.

Routes live under /api/v1: transform, diagram, render, diff, path and
documents. GET /healthz reports liveness. The server shuts down gracefully
on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "disable the document endpoints")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srvOpts := server.Options{
		Addr:            c.cfg.Server.Addr,
		ReadTimeout:     c.cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    c.cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: c.cfg.Server.ShutdownTimeout.Duration,
		MaxBodyBytes:    c.cfg.Server.MaxBodyBytes,
	}
	if opts.addr != "" {
		srvOpts.Addr = opts.addr
	}

	var docs store.Store
	if !opts.noStore {
		if docs, err = c.newStore(ctx); err != nil {
			return err
		}
		defer docs.Close()
	}

	srv := server.New(runner, docs, c.Logger, srvOpts)
	printInfo("Listening on http://%s", srvOpts.Addr)
	return srv.ListenAndServe(ctx)
}
