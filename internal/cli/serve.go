package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/siteoverview/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site overview over HTTP",
		Long: `Serve the site overview over HTTP.

Sites are loaded from the configured source on every request, so the panel
follows the monitoring data. Rendered artifacts are cached in the configured
cache backend.

Endpoints:
  GET /healthz
  GET /api/v1/sites
  GET /api/v1/layout?width=&height=&items=
  GET /api/v1/overview.{svg,png,pdf,json,dot,graphviz}?width=&height=
  GET /api/v1/hit?x=&y=&width=&height=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			logger := cfg.Log.NewLogger()
			if c.Logger.GetLevel() < logger.GetLevel() {
				logger.SetLevel(c.Logger.GetLevel())
			}
			c.Logger = logger

			src, err := c.openSource(ctx, "", "")
			if err != nil {
				return err
			}
			defer src.Close()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			defaults, err := c.baseOptions()
			if err != nil {
				return err
			}

			server.InstallHooks(logger)
			srv := server.New(server.Options{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				RequestTimeout:  cfg.Server.RequestTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Source:          src,
				Runner:          runner,
				Defaults:        defaults,
				Logger:          logger,
			})

			printInfo("Serving %s on %s", StyleHighlight.Render(src.Name()), StyleLink.Render(cfg.Server.Addr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
