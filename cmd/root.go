package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/config"
	"github.com/ce-dot-net/acetrail/internal/session"
	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "acetrail",
	Short: "Aggregate editor trajectory logs into session summaries for pattern learning",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// activateSession builds the session context for the current workspace.
// sessionID may be empty; the session resolves it from the trajectory logs
// once they are loaded.
func activateSession(sessionID string) (*session.Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return session.Activate(session.Options{
		WorkDir:   cwd,
		StateDir:  cfg.StateDir,
		RulesPath: cfg.RulesPath,
		ID:        sessionID,
		GitBudget: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})
}

// printWarnings reports dropped trajectory lines to stderr, after results.
func printWarnings(load trajectory.LoadResult) {
	for _, cat := range trajectory.Categories {
		for _, le := range load.Dropped[cat] {
			fmt.Fprintf(os.Stderr, "warning: %s trajectory: dropped %v\n", cat, le)
		}
	}
}
