package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdfblocks/rtree/internal/layout"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Rewrite a block file, compressing by the output extension",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := layout.OpenBlocks(args[0])
		if err != nil {
			return err
		}
		if err := layout.SaveBlocks(args[1], blocks); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d blocks to %s\n", successStyle.Render("wrote"), len(blocks), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
