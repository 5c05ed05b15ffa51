package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/config"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calculators as a JSON HTTP API",
		Long: `Run the JSON API. Settings come from the environment (PORT, LOG_LEVEL,
DEFAULT_TAX_YEAR, TAX_CONFIG, METRICS_ENABLED, SHUTDOWN_TIMEOUT_SECONDS);
--port, --tax-year and --tax-config override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if a.taxYear != "" {
				cfg.DefaultTaxYear = a.taxYear
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.NewLogger()
			if a.debug {
				logger.SetLevel(a.logger.GetLevel())
			}

			if cfg.TaxConfig != "" && cfg.TaxConfig != a.taxConfig {
				if err := a.years.LoadFile(cfg.TaxConfig); err != nil {
					return err
				}
			}
			if err := a.years.SetDefault(cfg.DefaultTaxYear); err != nil {
				return err
			}

			var reg *prometheus.Registry
			if cfg.MetricsEnabled {
				reg = prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
			}
			srv := server.NewHTTPServer(cfg.Addr(), server.New(a.years, logger, reg).Router())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("Starting server on %s (default tax year %s)", cfg.Addr(), a.years.DefaultKey())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default $PORT or 8080)")
	return cmd
}
