// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/chronologist/internal/provider"
	"github.com/pdiddy/chronologist/internal/server"
	"github.com/pdiddy/chronologist/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve history replies as JSON over HTTP",
	Long: `Serve answers GET /history/today and GET /history/{month}/{day}?year=Y
with the rendered sentences for that day. Without a year only the first few
sentences are returned. Prometheus metrics are exposed at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int("summary-limit", 3, "messages returned when no year is requested")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("summary_limit", serveCmd.Flags().Lookup("summary-limit"))
	_ = viper.BindPFlag("shutdown_timeout", serveCmd.Flags().Lookup("shutdown-timeout"))

	rootCmd.AddCommand(serveCmd)
}

func serveConfig() types.ServeConfig {
	return types.ServeConfig{
		Addr:            viper.GetString("addr"),
		SummaryLimit:    viper.GetInt("summary_limit"),
		ShutdownTimeout: viper.GetDuration("shutdown_timeout"),
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serveConfig()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := provider.New(providerConfig(), logger)
	handler := server.New(client, cfg, logger, server.NewMetrics(reg))
	srv := server.NewHTTPServer(cfg.Addr, server.NewRouter(handler, reg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting chronologist", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
