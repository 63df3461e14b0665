package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ce-dot-net/acetrail/internal/summary"
)

var summarizeFormat string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Build a summary of the current workspace's trajectory logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := activateSession("")
		if err != nil {
			return err
		}
		defer sess.Close()

		sum, load, err := sess.Summarize()
		if err != nil {
			return err
		}

		format := summarizeFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}
		var renderer summary.Renderer
		if format == "json" {
			renderer = &summary.JSONRenderer{}
		} else {
			renderer = &summary.MarkdownRenderer{}
		}

		data, err := renderer.Render(&sum)
		if err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		fmt.Println(string(data))

		printWarnings(load)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeFormat, "format", "", "Output format: markdown or json (overrides config)")
	rootCmd.AddCommand(summarizeCmd)
}
