package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/api"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var (
		ty      taxYearFlags
		addr    string
		origins string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payroll HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Addr
			}
			cfg, err := ty.resolve(a, nil)
			if err != nil {
				return err
			}

			var allowed []string
			for _, o := range strings.Split(origins, ",") {
				if o = strings.TrimSpace(o); o != "" {
					allowed = append(allowed, o)
				}
			}
			router := api.NewRouter(api.NewHandler(cfg, a.log), api.RouterOptions{AllowedOrigins: allowed})

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Infow("server listening", "addr", addr, "tax_year", cfg.TaxYear)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "server error")
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Infow("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "graceful shutdown failed")
			}
			return nil
		},
	}
	ty.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $UKPAYE_ADDR or :8080)")
	cmd.Flags().StringVar(&origins, "cors-origins", "*", "comma-separated allowed CORS origins")
	return cmd
}
