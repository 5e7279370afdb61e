package cli

import (
	"fmt"
	"strings"

	"github.com/hoangnm/skill-advisor/internal/analyzer"
	"github.com/hoangnm/skill-advisor/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the 'search' command for full-text skill search.
func NewSearchCmd() *cobra.Command {
	var configPath string
	var limit int
	var relevanceOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the skill catalog by free text",
		Long: `Run a full-text search over skill names, descriptions, categories, and
tags. By default the relevance score is fused with learned keyword weights
from invocation history; --relevance-only disables the learned signal.`,
		Example: `  skill-advisor search "database migration"
  skill-advisor search "react performance" --limit 3
  skill-advisor search "unit tests" --relevance-only`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "), configPath, limit, relevanceOnly, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum results")
	cmd.Flags().BoolVar(&relevanceOnly, "relevance-only", false, "Skip the learned-weight signal")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runSearch indexes the catalog in memory and executes the query.
func runSearch(query, configPath string, limit int, relevanceOnly, jsonOutput bool) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	skills := rt.advisor.Skills()
	if len(skills) == 0 {
		return fmt.Errorf("skill catalog is empty; run 'skill-advisor skills import' first")
	}

	indexer, err := search.NewIndexer()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer indexer.Close()

	if err := indexer.IndexSkills(skills); err != nil {
		return fmt.Errorf("failed to index skills: %w", err)
	}

	var results []search.Result
	if relevanceOnly {
		results, err = indexer.Search(query, limit)
	} else {
		keywords := analyzer.Analyze(query).Keywords
		results, err = indexer.SearchFused(query, keywords, rt.store, limit, search.DefaultFusionConfig)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No matching skills.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s (%.2f)\n", i+1, r.SkillName, r.Score)
		if r.Category != "" {
			fmt.Printf("   Category: %s\n", r.Category)
		}
		if r.Description != "" {
			fmt.Printf("   %s\n", r.Description)
		}
	}

	return nil
}
