package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/domain"
	"github.com/ce-dot-net/acetrail/internal/session"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Print the domain label for one or more file paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesPath := GetConfig().RulesPath
		if rulesPath == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			stateDir := GetConfig().StateDir
			if stateDir == "" {
				stateDir = filepath.Join(cwd, session.StateDirName)
			}
			rulesPath = filepath.Join(stateDir, "domains.yaml")
		}

		rules, err := domain.LoadRules(rulesPath)
		if err != nil {
			return err
		}
		classifier := domain.NewClassifier(rules)

		for _, path := range args {
			fmt.Printf("%s\t%s\n", path, classifier.Classify(path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
