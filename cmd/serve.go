package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/metrics"
	"github.com/alexiusacademia/goframe/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveEnvFile string
	serveAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the frame solver over HTTP",
	Long: `Start an HTTP server exposing the frame solver.

Endpoints:
  POST /api/solve         - Solve a structure (JSON body)
  POST /api/combinations  - Solve every load combination
  POST /api/report        - Solve and return a PDF report
  GET  /healthz           - Health check
  GET  /metrics           - Prometheus metrics

Configuration is read from the environment, optionally from a .env file:
  GOFRAME_ADDR             - Listen address (default :8080)
  GOFRAME_ENV              - "production" for JSON logs
  GOFRAME_RATE_LIMIT       - Requests per second per client (default 5)
  GOFRAME_RATE_BURST       - Burst size per client (default 10)
  GOFRAME_MAX_BODY_BYTES   - Request body limit (default 1 MiB)
  GOFRAME_CONDITION_LIMIT  - Condition number above which a frame is unstable

Examples:
  goframe serve
  goframe serve --addr :9000 --env-file prod.env`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", ".env", "Optional file of environment variables")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GOFRAME_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveEnvFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.New(cfg, logger, metrics.NewRegistry()).Run(ctx)
}
