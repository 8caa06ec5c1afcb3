package main

import (
	"github.com/spf13/cobra"

	"github.com/pdfblocks/rtree"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE...",
	Short: "Index block files and report per page tree statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			metrics := &rtree.BasicMetricsCollector{}
			doc, err := loadDocument(cmd.Context(), path, metrics)
			if err != nil {
				return err
			}
			FormatStats(cmd.OutOrStdout(), path, doc, metrics.Stats())
			doc.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
