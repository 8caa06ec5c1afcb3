package main

import (
	"github.com/spf13/cobra"

	"github.com/pdfblocks/rtree"
)

var (
	orderPage  int
	orderOrder string
)

var orderCmd = &cobra.Command{
	Use:   "order FILE",
	Short: "List every block of a page in reading order",
	Long: `List every block of a page in one of the reading orders:

  original    insertion order
  horizontal  left to right
  vertical    top to bottom
  mixed       top to bottom, then left to right
  mixedAbs    top to bottom, then by bottom edge, then left to right`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := rtree.ParseOrdering(orderOrder)
		if err != nil {
			return err
		}
		doc, p, err := loadPage(cmd.Context(), args[0], orderPage)
		if err != nil {
			return err
		}
		defer doc.Close()

		FormatBlocks(cmd.OutOrStdout(), p.Number, p.Ordered(order))
		return nil
	},
}

func init() {
	orderCmd.Flags().IntVarP(&orderPage, "page", "p", 1, "Page number")
	orderCmd.Flags().StringVarP(&orderOrder, "order", "o", rtree.OrderMixed.String(), "Reading order")
	rootCmd.AddCommand(orderCmd)
}
