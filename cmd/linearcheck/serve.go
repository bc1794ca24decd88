package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/linearcheck/internal/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

  POST /verify   {"variables": "x,y", "transformation": "(2*x, 3*y)"}
  POST /tool     {"tool": "simplify", "params": {"expr": "x + x"}}
  GET  /schema   tool schema for agent registration
  GET  /examples example gallery
  GET  /health   liveness check
  GET  /metrics  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, v, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(v, logger, server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
			return srv.ListenAndServe(ctx, cfg.Server)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
