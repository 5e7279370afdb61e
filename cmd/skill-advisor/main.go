/*
Package main is the entry point for the skill-advisor CLI.

skill-advisor recommends skills for a task description by combining
rule-based context analysis with learned invocation history.

Usage:
  skill-advisor [command]

Available Commands:
  recommend   Recommend skills for a task description
  feedback    Record the outcome of a skill invocation
  stats       Show recent recommendation statistics
  skills      List or import the skill catalog
  search      Search the skill catalog by free text
  serve       Run the advisor as a stdio JSON-lines server
  benchmark   Measure recommendation pipeline latency
  version     Show version information
  help        Help about any command

Examples:
  # Get recommendations for a task
  skill-advisor recommend "optimize my React app for better performance"

  # Teach the advisor an outcome
  skill-advisor feedback frontend-helper success

  # Run as a stdio server for a host process
  skill-advisor serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/hoangnm/skill-advisor/internal/cli"
	"github.com/hoangnm/skill-advisor/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skill-advisor",
		Short: "Context-aware skill recommendations with learning",
		Long: `skill-advisor analyzes task descriptions and recommends the most relevant
skills from a catalog.

Recommendations combine rule-based text analysis (keywords, intent, domains,
complexity) with weighted matching against skill metadata. Every returned
match and its outcome feedback is persisted, so confidence scores improve
with use.

Matches at or above the auto-invoke threshold are partitioned for automatic
invocation; the rest are advisory suggestions.`,
		Version: version.GetVersion(),
	}

	// Add subcommands
	rootCmd.AddCommand(cli.NewRecommendCmd())
	rootCmd.AddCommand(cli.NewFeedbackCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewBenchmarkCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	// Skills command with import subcommand
	skillsCmd := cli.NewSkillsCmd()
	skillsCmd.AddCommand(cli.NewSkillsImportCmd())
	rootCmd.AddCommand(skillsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
