package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"pixswap/converter"
	"pixswap/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the converter web page",
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if cfg.LogLevel == "debug" {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		engine, err := converter.ByName(cfg.Engine)
		if err != nil {
			return err
		}
		conv := converter.New(engine, cfg.Quality)

		srv := server.New(cfg, conv, logger)
		logger.Info("server starting",
			"addr", cfg.ListenAddr,
			"engine", engine.Name(),
			"quality", cfg.Quality,
		)
		if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
