package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the trajectory logs and print the digest as it changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := activateSession("")
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (ctrl-c to stop)\n", sess.StateDir)

		return trajectory.Watch(ctx, sess.StateDir, watchDebounce, func(fresh map[trajectory.Category][]trajectory.Entry) {
			sess.Invalidate()
			sum, _, err := sess.Summarize()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				return
			}
			for _, cat := range trajectory.Categories {
				if entries := fresh[cat]; len(entries) > 0 {
					fmt.Printf("%s  +%d %s\n", time.Now().Format("15:04:05"), len(entries), cat)
				}
			}
			// Classify fresh edits so domain shifts land in the shift log as
			// they happen, not only at learn time.
			for _, e := range fresh[trajectory.CategoryEdit] {
				if e.FilePath != "" {
					sess.Classify(e.FilePath)
				}
			}
			fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), sum.Digest)
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet window before reacting to a burst of appends")
	rootCmd.AddCommand(watchCmd)
}
