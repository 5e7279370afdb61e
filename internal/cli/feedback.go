package cli

import (
	"fmt"

	"github.com/hoangnm/skill-advisor/internal/storage"
	"github.com/spf13/cobra"
)

// NewFeedbackCmd creates the 'feedback' command for recording invocation
// outcomes.
func NewFeedbackCmd() *cobra.Command {
	var invocationID string
	var feedbackText string
	var configPath string

	cmd := &cobra.Command{
		Use:   "feedback <skill> <outcome>",
		Short: "Record the outcome of a skill invocation",
		Long: `Attach a success, failure, or partial outcome to a recorded invocation
so future recommendations can learn from it.

By default the outcome attaches to the most recent invocation when its skill
name matches. Pass --id with an invocation ID from 'recommend --json' to
target a specific invocation regardless of recency.`,
		Example: `  skill-advisor feedback frontend-helper success
  skill-advisor feedback db-migrator failure --note "generated invalid SQL"
  skill-advisor feedback frontend-helper partial --id 4f2c1f9e-...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(args[0], args[1], invocationID, feedbackText, configPath)
		},
	}

	cmd.Flags().StringVar(&invocationID, "id", "", "Target a specific invocation ID")
	cmd.Flags().StringVarP(&feedbackText, "note", "n", "", "Free-text feedback to store with the outcome")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")

	return cmd
}

// runFeedback validates the outcome and records it.
func runFeedback(skillName, outcome, invocationID, feedbackText, configPath string) error {
	switch outcome {
	case storage.OutcomeSuccess, storage.OutcomeFailure, storage.OutcomePartial:
	default:
		return fmt.Errorf("outcome must be %s, %s, or %s; got %q",
			storage.OutcomeSuccess, storage.OutcomeFailure, storage.OutcomePartial, outcome)
	}

	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	if invocationID != "" {
		err = rt.advisor.RecordFeedbackByID(invocationID, outcome, feedbackText)
	} else {
		err = rt.advisor.RecordFeedback(skillName, outcome, feedbackText)
	}
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Printf("Recorded %s for %s\n", outcome, skillName)
	return nil
}
