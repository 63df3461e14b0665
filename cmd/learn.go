package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/client"
)

var (
	learnDryRun  bool
	learnSession string
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Build the enriched session summary and send it to the learning backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := activateSession(learnSession)
		if err != nil {
			return err
		}
		defer sess.Close()

		sum, load, err := sess.SummarizeEnriched(cmd.Context())
		if err != nil {
			return err
		}

		req := client.LearnRequest{
			SessionID: sess.ID,
			Workspace: sess.WorkDir,
			Summary:   sum,
		}

		if learnDryRun {
			payload, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			printWarnings(load)
			return nil
		}

		cfg := GetConfig()
		c := &client.Client{
			BaseURL: cfg.BackendURL,
			Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		}
		if err := c.Learn(cmd.Context(), req); err != nil {
			return err
		}

		printWarnings(load)
		fmt.Printf("Learned from session %s: %s\n", sess.ID, sum.Digest)
		return nil
	},
}

func init() {
	learnCmd.Flags().BoolVar(&learnDryRun, "dry-run", false, "Print the learn payload instead of sending it")
	learnCmd.Flags().StringVar(&learnSession, "session", "", "Session ID (default: derived from the trajectory logs)")
	rootCmd.AddCommand(learnCmd)
}
