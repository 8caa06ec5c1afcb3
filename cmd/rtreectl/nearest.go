package main

import (
	"github.com/spf13/cobra"
)

var (
	nearestPage        int
	nearestPoint       string
	nearestK           int
	nearestMaxDistance float64
)

var nearestCmd = &cobra.Command{
	Use:   "nearest FILE",
	Short: "List the blocks of a page closest to a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parsePoint(nearestPoint)
		if err != nil {
			return err
		}
		doc, p, err := loadPage(cmd.Context(), args[0], nearestPage)
		if err != nil {
			return err
		}
		defer doc.Close()

		blocks, err := p.Nearest(x, y, nearestK, nearestMaxDistance)
		if err != nil {
			return err
		}
		FormatBlocks(cmd.OutOrStdout(), p.Number, blocks)
		return nil
	},
}

func init() {
	nearestCmd.Flags().IntVarP(&nearestPage, "page", "p", 1, "Page number")
	nearestCmd.Flags().StringVar(&nearestPoint, "point", "", "Point as x,y")
	nearestCmd.Flags().IntVarP(&nearestK, "count", "k", 1, "Number of blocks to return")
	nearestCmd.Flags().Float64Var(&nearestMaxDistance, "max-distance", -1, "Ignore blocks further than this (negative = no limit)")
	_ = nearestCmd.MarkFlagRequired("point")
	rootCmd.AddCommand(nearestCmd)
}
