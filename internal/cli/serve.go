package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brainboard/pkg/api"
	"github.com/matzehuels/brainboard/pkg/observability/prom"
)

// shutdownTimeout bounds draining in-flight requests on exit.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		metrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = c.config.Server.Addr
			}
			if metrics {
				prom.New(prometheus.DefaultRegisterer).Register()
			}

			reg, err := c.openRegistry(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(reg, api.WithLogger(logger)).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Info("serving boards", "addr", addr, "store", c.config.Store.Backend)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				return err
			}
			if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "record Prometheus metrics at /metrics")
	return cmd
}
