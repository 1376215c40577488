package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridict/veridict/internal/explain"
	"github.com/veridict/veridict/internal/orchestrator"
	"github.com/veridict/veridict/internal/util"
)

var (
	validateInput   string
	validateOutJSON string
	validateExplain bool
	validateSeed    bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate registered statements and print a summary",
	Long: `Validate loads statements from a JSON file (or seeds a demonstration
set), evaluates the coherence of every statement and prints the
aggregated summary.

Example:
  veridict validate --input statements.json
  veridict validate --seed --json verdicts.json
  veridict validate --input statements.json --explain`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateInput, "input", "", "statements JSON file (as written by export)")
	validateCmd.Flags().StringVar(&validateOutJSON, "json", "", "write verdicts to this JSON path")
	validateCmd.Flags().BoolVar(&validateExplain, "explain", false, "generate an LLM narrative of the run (never affects scores)")
	validateCmd.Flags().BoolVar(&validateSeed, "seed", false, "seed the registry with demonstration statements")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch := orchestrator.New(cfg)
	switch {
	case validateInput != "":
		count, err := orch.Registry.Import(validateInput)
		if err != nil {
			return fmt.Errorf("import statements: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Imported %d statements from %s\n", count, validateInput)
		}
	case validateSeed:
		if err := orch.Seed(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("nothing to validate: pass --input <file> or --seed")
	}

	verdicts := orch.Validator.ValidateAll()
	summary := orch.Validator.Summary()

	fmt.Print(util.FormatReport(map[string]any{
		"total_validated":    summary.TotalValidated,
		"coherent":           summary.Coherent,
		"suspicious":         summary.Suspicious,
		"noise":              summary.Noise,
		"average_confidence": summary.AverageConfidence,
		"coherence_rate":     summary.CoherenceRate,
	}, "Validation Summary"))

	if validateOutJSON != "" {
		encoded, err := json.MarshalIndent(verdicts, "", "  ")
		if err != nil {
			return fmt.Errorf("encode verdicts: %w", err)
		}
		if err := os.WriteFile(validateOutJSON, encoded, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", validateOutJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %d verdicts to %s\n", len(verdicts), validateOutJSON)
		}
	}

	if validateExplain {
		if cfg.Explain.Provider == "" {
			cfg.Explain.Provider = "openai"
		}
		provider, err := explain.NewProvider(cfg.Explain)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := provider.Narrate(ctx, explain.NarrateRequest{
			Summary:   summary,
			Verdicts:  verdicts,
			Model:     cfg.Explain.Model,
			MaxTokens: cfg.Explain.MaxTokens,
		})
		if err != nil {
			return fmt.Errorf("narrative failed: %w", err)
		}
		fmt.Println()
		fmt.Println(resp.NarrativeM)
	}

	return nil
}
