package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var patternsSession string

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect or update the pattern-attribution store",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pattern IDs consulted during a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := activateSession(patternsSession)
		if err != nil {
			return err
		}
		defer sess.Close()

		if patternsSession == "" {
			// Resolve against the logs so list and learn agree on the ID.
			if _, _, err := sess.Summarize(); err != nil {
				return err
			}
		}

		ids := sess.Patterns().Load(sess.ID)
		if len(ids) == 0 {
			fmt.Printf("No patterns recorded for session %s.\n", sess.ID)
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var patternsAddCmd = &cobra.Command{
	Use:   "add <pattern-id>",
	Short: "Record that a pattern was consulted during a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := activateSession(patternsSession)
		if err != nil {
			return err
		}
		defer sess.Close()

		if patternsSession == "" {
			if _, _, err := sess.Summarize(); err != nil {
				return err
			}
		}

		if err := sess.Patterns().Append(sess.ID, args[0]); err != nil {
			return err
		}
		fmt.Printf("Recorded %s for session %s.\n", args[0], sess.ID)
		return nil
	},
}

func init() {
	patternsCmd.PersistentFlags().StringVar(&patternsSession, "session", "", "Session ID (default: derived from the trajectory logs)")
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsAddCmd)
	rootCmd.AddCommand(patternsCmd)
}
