package cli

import (
	"fmt"
	"strings"

	"github.com/hoangnm/skill-advisor/internal/config"
	"github.com/spf13/cobra"
)

// NewSkillsCmd creates the 'skills' command for listing the catalog. The
// 'import' subcommand is attached by the caller.
func NewSkillsCmd() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "skills",
		Aliases: []string{"ls"},
		Short:   "List the skill catalog",
		Long:    `Display all skills in the configured catalog file.`,
		Example: `  skill-advisor skills
  skill-advisor skills --json
  skill-advisor skills import ./skills.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsList(configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runSkillsList prints the current catalog.
func runSkillsList(configPath string, jsonOutput bool) error {
	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	skills := rt.advisor.Skills()

	if jsonOutput {
		return printJSON(skills)
	}

	if len(skills) == 0 {
		fmt.Println("No skills in the catalog.")
		fmt.Println("Run 'skill-advisor skills import <file>' to load one.")
		return nil
	}

	fmt.Printf("Skill catalog (%d):\n\n", len(skills))
	for _, skill := range skills {
		fmt.Printf("  %s\n", skill.Name)
		if skill.Category != "" {
			fmt.Printf("    Category: %s\n", skill.Category)
		}
		if len(skill.Tags) > 0 {
			fmt.Printf("    Tags:     %s\n", strings.Join(skill.Tags, ", "))
		}
		if skill.Description != "" {
			fmt.Printf("    %s\n", skill.Description)
		}
		fmt.Println()
	}

	return nil
}

// NewSkillsImportCmd creates the 'skills import' subcommand. It validates a
// JSON catalog file, installs it as the configured catalog, and primes the
// metadata cache.
func NewSkillsImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a skill catalog from a JSON file",
		Long: `Validate a JSON file containing an array of skills and install it as the
configured catalog (default ~/.skill-advisor/skills.json). Existing usage
counters for already-known skills are preserved.`,
		Example: `  skill-advisor skills import ./skills.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkillsImport(args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.skill-advisor.json)")

	return cmd
}

// runSkillsImport validates and installs a catalog file.
func runSkillsImport(sourcePath, configPath string) error {
	skills, err := loadSkillCatalog(sourcePath)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return fmt.Errorf("catalog %s contains no skills", sourcePath)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	targetPath, err := cfg.ResolveSkillsPath()
	if err != nil {
		return err
	}

	if err := saveSkillCatalog(targetPath, skills); err != nil {
		return err
	}

	rt, err := openRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	fmt.Printf("Imported %d skills to %s\n", len(skills), targetPath)
	return nil
}
