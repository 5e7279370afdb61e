package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the 'stats' command for summarizing recent activity.
func NewStatsCmd() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recent recommendation statistics",
		Long:  `Display the recent success rate and the most-invoked skills.`,
		Example: `  skill-advisor stats
  skill-advisor stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runStats fetches and prints statistics.
func runStats(configPath string, jsonOutput bool) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	stats, err := rt.advisor.Statistics()
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	if jsonOutput {
		return printJSON(stats)
	}

	fmt.Printf("Recent invocations: %d\n", stats.SampleSize)
	fmt.Printf("Success rate:       %.0f%%\n", stats.SuccessRate*100)

	if len(stats.TopSkills) > 0 {
		fmt.Println("\nTop skills:")
		for _, skill := range stats.TopSkills {
			line := fmt.Sprintf("  %-24s %d invocations", skill.Name, skill.InvocationCount)
			if !skill.LastInvoked.IsZero() {
				line += fmt.Sprintf("  (last: %s)", skill.LastInvoked.Format(time.DateOnly))
			}
			fmt.Println(line)
		}
	}

	return nil
}
