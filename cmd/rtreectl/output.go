package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdfblocks/rtree"
	"github.com/pdfblocks/rtree/internal/layout"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// kindStyle for block kinds
	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the stats summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

const maxTextWidth = 48

// FormatBlocks writes one line per block.
func FormatBlocks(w io.Writer, page int, blocks []layout.Block) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("page %d", page)),
		dimStyle.Render(fmt.Sprintf("(%d blocks)", len(blocks))))
	for _, b := range blocks {
		fmt.Fprintf(w, "%s %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%6d", b.ID)),
			kindStyle.Render(fmt.Sprintf("%-8s", b.Kind)),
			b.BBox,
			truncate(b.Text, maxTextWidth),
		)
	}
}

// FormatStats renders a summary box for an indexed document.
func FormatStats(w io.Writer, path string, doc *layout.Document, stats rtree.BasicMetricsStats) {
	var lines []string
	lines = append(lines, titleStyle.Render(path))
	lines = append(lines, fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Pages:"), len(doc.Pages()),
		dimStyle.Render("Blocks:"), doc.Len()))
	for _, p := range doc.Pages() {
		margin, _ := p.Margin()
		lines = append(lines, fmt.Sprintf("  %s %4d blocks  height %d  margin %v",
			dimStyle.Render(fmt.Sprintf("page %-4d", p.Number)), p.Len(), p.Height(), margin))
	}
	lines = append(lines, fmt.Sprintf("%s %d (avg %s)  %s %d leaf, %d branch",
		dimStyle.Render("Inserts:"), stats.InsertCount, time.Duration(stats.InsertAvgNanos),
		dimStyle.Render("Splits:"), stats.LeafSplits, stats.BranchSplits))
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
