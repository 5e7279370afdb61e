package cli

import (
	"fmt"

	"github.com/hoangnm/skill-advisor/internal/benchmark"
	"github.com/spf13/cobra"
)

// NewBenchmarkCmd creates the 'benchmark' command for pipeline latency
// testing.
func NewBenchmarkCmd() *cobra.Command {
	var configPath string
	var rounds int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure recommendation pipeline latency",
		Long: `Run a fixed set of representative prompts through context analysis and
the full recommendation pipeline, reporting per-stage mean and max wall
times against the current skill catalog.`,
		Example: `  skill-advisor benchmark
  skill-advisor benchmark --rounds 10 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarkCmd(configPath, rounds, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", 3, "Rounds per stage over the sample prompts")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runBenchmarkCmd executes the latency benchmark.
func runBenchmarkCmd(configPath string, rounds int, jsonOutput bool) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	report, err := benchmark.Run(rt.advisor, rounds)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if jsonOutput {
		return printJSON(report)
	}

	fmt.Print(benchmark.Format(report))
	return nil
}
