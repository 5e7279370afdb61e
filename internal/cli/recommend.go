package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRecommendCmd creates the 'recommend' command for running the
// recommendation pipeline against a prompt.
func NewRecommendCmd() *cobra.Command {
	var rationale string
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "recommend <prompt>",
		Aliases: []string{"rec"},
		Short:   "Recommend skills for a task description",
		Long: `Analyze a task description, score the skill catalog against it, and
print auto-invoke and suggestion partitions with reasoning.`,
		Example: `  skill-advisor recommend "optimize my React app for better performance"
  skill-advisor recommend "fix the login bug" --rationale "users report 500s on POST /login"
  skill-advisor recommend "write unit tests" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(strings.Join(args, " "), rationale, configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&rationale, "rationale", "r", "", "Secondary context text combined with the prompt")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runRecommend executes the pipeline and prints the result.
func runRecommend(prompt, rationale, configPath string, jsonOutput bool) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	result, err := rt.advisor.Recommend(prompt, rationale)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if jsonOutput {
		return printJSON(result)
	}

	fmt.Println(result.Reasoning)
	fmt.Println()

	if len(result.AutoInvoke) > 0 {
		fmt.Println("Auto-invoke:")
		for _, m := range result.AutoInvoke {
			fmt.Printf("  %s (%.0f%%)\n", m.SkillName, m.Confidence*100)
			for _, reason := range m.Reasons {
				fmt.Printf("    - %s\n", reason)
			}
		}
		fmt.Println()
	}

	if len(result.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, m := range result.Suggestions {
			fmt.Printf("  %s (%.0f%%)\n", m.SkillName, m.Confidence*100)
			for _, reason := range m.Reasons {
				fmt.Printf("    - %s\n", reason)
			}
		}
	}

	if len(result.AutoInvoke) == 0 && len(result.Suggestions) == 0 {
		fmt.Println("No skills matched this prompt.")
	}

	return nil
}
