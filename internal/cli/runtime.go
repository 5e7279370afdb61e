/*
Package cli implements the skill-advisor command set.

Each command constructor returns a cobra.Command; the shared runtime helpers
here wire configuration, storage, the skill catalog, and the advisor together
so individual commands stay small.
*/
package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hoangnm/skill-advisor/internal/advisor"
	"github.com/hoangnm/skill-advisor/internal/config"
	"github.com/hoangnm/skill-advisor/internal/matcher"
	"github.com/hoangnm/skill-advisor/internal/storage"
)

// runtime bundles the pieces a command needs.
type runtime struct {
	cfg     *config.Config
	store   storage.Storage
	advisor *advisor.Advisor
}

// close releases the runtime's storage.
func (r *runtime) close() {
	if err := r.store.Close(); err != nil {
		log.Printf("Warning: failed to close storage: %v", err)
	}
}

// openRuntime loads configuration, opens and initializes storage, loads the
// skill catalog, and builds the advisor. configPath may be empty for the
// default location.
func openRuntime(configPath string) (*runtime, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}

	store := storage.NewStorageAt(dbPath)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := advisor.New(store, advisorConfig(cfg))

	skillsPath, err := cfg.ResolveSkillsPath()
	if err != nil {
		store.Close()
		return nil, err
	}

	skills, err := loadSkillCatalog(skillsPath)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := a.UpdateSkills(skills); err != nil {
		store.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, store: store, advisor: a}, nil
}

// advisorConfig maps file configuration onto the advisor configuration.
func advisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Config: matcher.Config{
			AutoInvokeThreshold: cfg.AutoInvokeThreshold,
			SuggestionThreshold: cfg.SuggestionThreshold,
			MaxSuggestions:      cfg.MaxSuggestions,
			LearningEnabled:     cfg.LearningEnabled,
			ContextWindow:       cfg.ContextWindow,
		},
		EnableAutoInvoke: cfg.EnableAutoInvoke,
	}
}

// loadSkillCatalog reads a JSON array of skills. A missing file yields an
// empty catalog so first runs work before any import.
func loadSkillCatalog(path string) ([]matcher.Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: no skill catalog at %s, starting empty", path)
			return []matcher.Skill{}, nil
		}
		return nil, fmt.Errorf("failed to read skill catalog: %w", err)
	}

	var skills []matcher.Skill
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("failed to parse skill catalog %s: %w", path, err)
	}

	for i, skill := range skills {
		if skill.Name == "" {
			return nil, fmt.Errorf("skill catalog entry %d has no name", i)
		}
	}

	return skills, nil
}

// saveSkillCatalog writes a skill catalog as indented JSON, creating the
// parent directory if needed.
func saveSkillCatalog(path string, skills []matcher.Skill) error {
	data, err := json.MarshalIndent(skills, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize skill catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write skill catalog: %w", err)
	}

	return nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
