// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doctor-directory/internal/records"
	"github.com/pdiddy/doctor-directory/internal/server"
	"github.com/pdiddy/doctor-directory/internal/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory as a JSON HTTP API",
	Long: `Serve starts an HTTP API over the doctor list. The list is loaded once in
the background; until it arrives every query returns an empty result.

Routes:
  GET  /health
  GET  /api/doctors?<query>
  GET  /api/suggestions?q=<text>
  GET  /api/specialties
  GET  /api/controls?<query>
  POST /api/events?<query>   body: {"type": ..., "value": ..., "checked": ...}`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Float64("rate-limit", 0, "requests per second per client IP (0 disables)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.rate_limit", serveCmd.Flags().Lookup("rate-limit"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := source.Open(ctx, cfg)
	if err != nil {
		return err
	}
	logger := slog.Default()
	store := records.NewStore(logger)
	store.LoadAsync(ctx, src)

	srv := server.New(store, cfg.URL.Policy, logger, server.WithRateLimit(cfg.Serve.RateLimit))
	return srv.Run(ctx, cfg.Serve.Addr)
}
