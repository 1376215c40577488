package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridict/veridict/internal/ingest"
	"github.com/veridict/veridict/internal/orchestrator"
	"github.com/veridict/veridict/internal/util"
)

var (
	ingestCategory string
	ingestMax      int
	ingestTimeout  time.Duration
	ingestNoRobots bool
	ingestExport   string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Ingest a text feed and validate the extracted statements",
	Long: `Ingest fetches a web page, extracts assertion-like sentences,
registers them as unverified statements and validates them.

Example:
  veridict ingest https://example.com/changelog --category releases
  veridict ingest https://example.com/status --max 50 --export statements.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestCategory, "category", "", "category for registered statements (default from config)")
	ingestCmd.Flags().IntVar(&ingestMax, "max", 0, "cap on registered statements (0 = config default)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 2*time.Minute, "overall ingestion timeout")
	ingestCmd.Flags().BoolVar(&ingestNoRobots, "no-robots", false, "skip the robots.txt check")
	ingestCmd.Flags().StringVar(&ingestExport, "export", "", "write the registry to this JSON path afterwards")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ingestMax > 0 {
		cfg.Ingest.MaxStatements = ingestMax
	}
	if ingestNoRobots {
		cfg.Ingest.RespectRobots = false
	}

	logger := newLogger()
	orch := orchestrator.New(cfg)
	in := ingest.New(orch.Registry, cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	report, err := in.Ingest(ctx, args[0], ingestCategory)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	_ = orch.Validator.ValidateAll()
	s := orch.Validator.Summary()
	fmt.Print(util.FormatReport(map[string]any{
		"source_url":         report.SourceURL,
		"extracted":          report.Extracted,
		"registered":         report.Registered,
		"skipped":            report.Skipped,
		"coherent":           s.Coherent,
		"suspicious":         s.Suspicious,
		"noise":              s.Noise,
		"average_confidence": s.AverageConfidence,
	}, "Ingestion Report"))

	if ingestExport != "" {
		if err := orch.Registry.Export(ingestExport); err != nil {
			return err
		}
		fmt.Printf("Registry exported to %s\n", ingestExport)
	}
	return nil
}
