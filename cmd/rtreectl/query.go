package main

import (
	"github.com/spf13/cobra"

	"github.com/pdfblocks/rtree"
	"github.com/pdfblocks/rtree/internal/layout"
)

var (
	queryPage     int
	queryRects    []string
	queryMode     string
	queryMinRatio float64
	queryOrder    string
)

var queryCmd = &cobra.Command{
	Use:   "query FILE",
	Short: "List the blocks of a page matching one or more regions",
	Long: `List the blocks of a page matching a region. With several --rect flags the
result is the union of the blocks matched by each region.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := layout.ParseMode(queryMode)
		if err != nil {
			return err
		}
		order, err := rtree.ParseOrdering(queryOrder)
		if err != nil {
			return err
		}
		queries := make([]layout.Query, 0, len(queryRects))
		for _, s := range queryRects {
			bb, err := parseRect(s)
			if err != nil {
				return err
			}
			queries = append(queries, layout.Query{Mode: mode, BBox: bb, MinRatio: queryMinRatio, Order: order})
		}

		doc, p, err := loadPage(cmd.Context(), args[0], queryPage)
		if err != nil {
			return err
		}
		defer doc.Close()

		var blocks []layout.Block
		if len(queries) == 1 {
			blocks, err = p.Query(queries[0])
		} else {
			var sel *layout.Selection
			sel, err = p.Select(queries...)
			if err == nil {
				blocks = p.Blocks(sel, order)
			}
		}
		if err != nil {
			return err
		}
		FormatBlocks(cmd.OutOrStdout(), p.Number, blocks)
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVarP(&queryPage, "page", "p", 1, "Page number")
	queryCmd.Flags().StringArrayVarP(&queryRects, "rect", "r", nil, "Region as min_x,min_y,max_x,max_y (repeatable)")
	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", layout.ModeIntersects.String(), "Match mode (intersects, contains, containing, overlapping)")
	queryCmd.Flags().Float64Var(&queryMinRatio, "min-ratio", 0, "Minimum covered fraction of a block for overlapping mode")
	queryCmd.Flags().StringVarP(&queryOrder, "order", "o", rtree.OrderInsertion.String(), "Result ordering")
	_ = queryCmd.MarkFlagRequired("rect")
	rootCmd.AddCommand(queryCmd)
}
