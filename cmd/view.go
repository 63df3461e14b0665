package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/summary"
	"github.com/ce-dot-net/acetrail/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Browse a session summary (saved JSON, or built live from the workspace)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var sum summary.Summary
		title := ""

		if len(args) == 1 {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s", path)
				}
				return err
			}
			if err := json.Unmarshal(data, &sum); err != nil {
				return fmt.Errorf("failed to parse summary file %s: %w", path, err)
			}
			title = filepath.Base(path)
		} else {
			sess, err := activateSession("")
			if err != nil {
				return err
			}
			defer sess.Close()

			live, load, err := sess.SummarizeEnriched(cmd.Context())
			if err != nil {
				return err
			}
			printWarnings(load)
			sum = live
			title = filepath.Base(sess.WorkDir)
		}

		if plainOutput || !term.IsTerminal(os.Stdout.Fd()) {
			printSummary(&sum)
			return nil
		}
		return tui.Run(&sum, title)
	},
}

// printSummary writes a plain-text rendering to stdout.
func printSummary(s *summary.Summary) {
	fmt.Println("## Session")
	fmt.Printf("  Digest:     %s\n", s.Digest)
	if s.Git != nil && s.Git.IsRepo {
		fmt.Printf("  Branch:     %s\n", s.Git.Branch)
		fmt.Printf("  Commit:     %s\n", s.Git.Hash)
		for _, c := range s.Git.SessionCommits {
			fmt.Printf("  Committed:  %s\n", c)
		}
	}
	fmt.Println()

	fmt.Println("## Tool Calls")
	if len(s.ToolCalls) == 0 {
		fmt.Println("  (none)")
	} else {
		names := make([]string, 0, len(s.ToolCalls))
		for name := range s.ToolCalls {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %d\n", name, s.ToolCalls[name])
		}
	}
	fmt.Println()

	fmt.Println("## Steps")
	if len(s.Steps) == 0 {
		fmt.Println("  (none)")
	} else {
		for i, step := range s.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
	fmt.Println()

	fmt.Println("## Edited Files")
	if len(s.EditedFiles) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, f := range s.EditedFiles {
			fmt.Printf("  %s\n", f)
		}
	}
	fmt.Println()

	fmt.Println("## Shell Commands")
	if len(s.ShellCommands) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, c := range s.ShellCommands {
			fmt.Printf("  %s\n", c)
		}
	}

	if len(s.PlaybookUsed) > 0 {
		fmt.Println()
		fmt.Println("## Patterns Consulted")
		for _, id := range s.PlaybookUsed {
			fmt.Printf("  %s\n", id)
		}
	}
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print a plain-text summary instead of the TUI")
	rootCmd.AddCommand(viewCmd)
}
