package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfblocks/rtree"
	"github.com/pdfblocks/rtree/internal/layout"
)

func TestParseRect(t *testing.T) {
	bb, err := parseRect("1, 2,3.5,4")
	require.NoError(t, err)
	assert.Equal(t, rtree.BBox{MinX: 1, MinY: 2, MaxX: 3.5, MaxY: 4}, bb)

	_, err = parseRect("1,2,3")
	assert.ErrorContains(t, err, "want 4")
	_, err = parseRect("1,2,x,4")
	assert.Error(t, err)
	_, err = parseRect("3,0,1,1")
	assert.ErrorIs(t, err, rtree.ErrInvalidRect)
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint("10,-2.5")
	require.NoError(t, err)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, -2.5, y)

	_, _, err = parsePoint("10")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.tsv.zst")
	require.NoError(t, layout.SaveBlocks(path, []layout.Block{
		{ID: 1, Page: 1, Kind: "title", BBox: rtree.BBox{MinX: 0, MinY: 0, MaxX: 60, MaxY: 5}, Text: "Heading"},
		{ID: 2, Page: 1, Kind: "text", BBox: rtree.BBox{MinX: 35, MinY: 10, MaxX: 60, MaxY: 35}, Text: "right"},
		{ID: 3, Page: 1, Kind: "text", BBox: rtree.BBox{MinX: 0, MinY: 10, MaxX: 25, MaxY: 30}, Text: "left"},
	}))

	out := run(t, "order", path, "--page", "1", "--order", "horizontal")
	require.Contains(t, out, "(3 blocks)")
	assert.Less(t, strings.Index(out, "left"), strings.Index(out, "right"))

	out = run(t, "query", path, "--page", "1", "--rect", "0,8,30,40", "--mode", "contains", "--order", "original")
	assert.Contains(t, out, "(1 blocks)")
	assert.Contains(t, out, "left")

	out = run(t, "query", path, "--rect", "40,20,40,20", "--rect", "1,1,1,1", "--mode", "containing", "--order", "vertical")
	assert.Contains(t, out, "(2 blocks)")
	assert.Less(t, strings.Index(out, "Heading"), strings.Index(out, "right"))

	out = run(t, "nearest", path, "--point", "20,20", "-k", "1")
	assert.Contains(t, out, "left")

	out = run(t, "stats", path)
	assert.Contains(t, out, "Blocks: 3")

	plain := filepath.Join(t.TempDir(), "blocks.tsv")
	out = run(t, "convert", path, plain)
	assert.Contains(t, out, "3 blocks")
	blocks, err := layout.OpenBlocks(plain)
	require.NoError(t, err)
	assert.Len(t, blocks, 3)
}
