package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oceania-analytics/tradedash/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		provider := newProvider()

		// Load at startup so a bad dataset aborts before listening
		// instead of failing every request.
		if _, err := provider.Table(); err != nil {
			return err
		}

		return server.New(cfg.Server, provider).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
