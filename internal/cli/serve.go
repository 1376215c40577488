package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veridict/veridict/internal/orchestrator"
	"github.com/veridict/veridict/internal/server"
)

var (
	serveAddr   string
	serveAPIKey string
	serveSeed   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP API",
	Long: `Serve starts the HTTP API: text validation, detector runs, statement
registration and validation summaries, plus Prometheus metrics at
/metrics.

Example:
  veridict serve
  veridict serve --addr :9090 --api-key secret`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key required in the x-api-key header")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", true, "seed the registry with demonstration statements")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveAPIKey != "" {
		cfg.Server.APIKey = serveAPIKey
	}

	logger := newLogger()
	orch := orchestrator.New(cfg)
	if serveSeed {
		if err := orch.Seed(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(orch, cfg.Server, logger)
	return srv.Start(ctx)
}
