package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfblocks/rtree"
)

func sampleBlocks() []Block {
	return []Block{
		{ID: 1, Page: 1, Kind: "title", BBox: rtree.BBox{MinX: 0, MinY: 0, MaxX: 60, MaxY: 5}, Text: "Annual report"},
		{ID: 2, Page: 1, Kind: "text", BBox: rtree.BBox{MinX: 0, MinY: 10, MaxX: 25, MaxY: 30}, Text: "left column"},
		{ID: 3, Page: 1, Kind: "text", BBox: rtree.BBox{MinX: 35, MinY: 10, MaxX: 60, MaxY: 35}, Text: "right column"},
		{ID: 4, Page: 2, Kind: "figure", BBox: rtree.BBox{MinX: 5.5, MinY: 7.25, MaxX: 40, MaxY: 41}, Text: ""},
		{ID: 5, Page: 2, Kind: "text", BBox: rtree.BBox{MinX: 5, MinY: 45, MaxX: 40, MaxY: 50}, Text: "caption, with \"quotes\""},
	}
}

func TestReadWriteBlocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBlocks(&buf, sampleBlocks()))
	assert.True(t, strings.HasPrefix(buf.String(), "id\tpage\tkind\t"))

	got, err := ReadBlocks(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleBlocks(), got)
}

func TestReadBlocksWithoutHeader(t *testing.T) {
	in := "# exported blocks\n7\t3\ttext\t1\t2\t3\t4\thello\n"
	got, err := ReadBlocks(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Block{ID: 7, Page: 3, Kind: "text", BBox: rtree.BBox{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}, Text: "hello"}, got[0])
}

func TestReadBlocksErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"bad id", "x\t1\ttext\t0\t0\t1\t1\t\n", "line 1: id"},
		{"bad page", "1\tp\ttext\t0\t0\t1\t1\t\n", "line 1: page"},
		{"bad coordinate", "1\t1\ttext\t0\tnope\t1\t1\t\n", "line 1: min_y"},
		{"missing field", "1\t1\ttext\t0\t0\t1\n", "wrong number of fields"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadBlocks(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := ReadBlocks(strings.NewReader("1\t1\ttext\t0\t0\t1\t1\t\n2\t1\ttext\t5\t0\t1\t1\t\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rtree.ErrInvalidRect)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSaveOpenBlocks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"blocks.tsv", "blocks.tsv.zst", "blocks.tsv.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveBlocks(path, sampleBlocks()))
			got, err := OpenBlocks(path)
			require.NoError(t, err)
			assert.Equal(t, sampleBlocks(), got)
		})
	}

	_, err := OpenBlocks(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)
}
