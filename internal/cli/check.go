package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/util"
)

var (
	checkPrevious string
	checkContext  string
	checkJSON     bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Run all deception detectors over a piece of text",
	Long: `Check runs every detector over the given text and prints each outcome:
whether the pattern was detected, its probability level and the exact
signals that matched.

Example:
  veridict check "That's wrong, it's not deployed"
  veridict check "Deployed at https://example.com" --json
  veridict check "The feature is deployed and ready" --previous "it is deployed"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkPrevious, "previous", "", "previous text for reassertion detection")
	checkCmd.Flags().StringVar(&checkContext, "context", "", "short context note")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print outcomes as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dctx := &model.DetectionContext{
		PreviousText: checkPrevious,
		ContextNote:  checkContext,
	}

	outcomes, err := detect.RunAll(args[0], dctx)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	}

	for _, outcome := range outcomes {
		report := map[string]any{
			"detected":        outcome.Detected,
			"probability":     outcome.Probability,
			"matched_signals": outcome.MatchedSignals,
		}
		fmt.Print(util.FormatReport(report, string(outcome.Category)))
		fmt.Println()
	}
	return nil
}
