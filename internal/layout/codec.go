package layout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/pdfblocks/rtree"
)

var header = []string{"id", "page", "kind", "min_x", "min_y", "max_x", "max_y", "text"}

type compression int

const (
	compressionNone compression = iota
	compressionZstd
	compressionLZ4
)

func compressionOf(path string) compression {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return compressionZstd
	case strings.HasSuffix(path, ".lz4"):
		return compressionLZ4
	default:
		return compressionNone
	}
}

// ReadBlocks decodes tab separated blocks. A leading header row and lines
// starting with '#' are skipped.
func ReadBlocks(r io.Reader) ([]Block, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = len(header)

	var blocks []Block
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read blocks: %w", err)
		}
		if first && rec[0] == header[0] {
			continue
		}
		b, err := parseBlock(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read blocks: line %d: %w", line, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func parseBlock(rec []string) (Block, error) {
	id, err := strconv.ParseUint(rec[0], 10, 32)
	if err != nil {
		return Block{}, fmt.Errorf("id: %w", err)
	}
	page, err := strconv.Atoi(rec[1])
	if err != nil {
		return Block{}, fmt.Errorf("page: %w", err)
	}
	var bounds [4]float64
	for i := range bounds {
		bounds[i], err = strconv.ParseFloat(rec[3+i], 64)
		if err != nil {
			return Block{}, fmt.Errorf("%s: %w", header[3+i], err)
		}
	}
	bb := rtree.BBox{MinX: bounds[0], MinY: bounds[1], MaxX: bounds[2], MaxY: bounds[3]}
	if err := bb.Validate(); err != nil {
		return Block{}, err
	}
	return Block{
		ID:   uint32(id),
		Page: page,
		Kind: rec[2],
		BBox: bb,
		Text: rec[7],
	}, nil
}

// WriteBlocks encodes blocks as tab separated values with a header row.
func WriteBlocks(w io.Writer, blocks []Block) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write blocks: %w", err)
	}
	for _, b := range blocks {
		rec := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			strconv.Itoa(b.Page),
			b.Kind,
			formatFloat(b.BBox.MinX),
			formatFloat(b.BBox.MinY),
			formatFloat(b.BBox.MaxX),
			formatFloat(b.BBox.MaxY),
			b.Text,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write blocks: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write blocks: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// OpenBlocks reads a block file. Files ending in ".zst" are zstd compressed
// and files ending in ".lz4" are lz4 compressed.
func OpenBlocks(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch compressionOf(path) {
	case compressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	case compressionLZ4:
		r = lz4.NewReader(f)
	}

	blocks, err := ReadBlocks(r)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return blocks, nil
}

// SaveBlocks writes a block file, compressing it according to its extension
// as OpenBlocks expects.
func SaveBlocks(path string, blocks []Block) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.WriteCloser
	switch compressionOf(path) {
	case compressionZstd:
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		w = enc
	case compressionLZ4:
		w = lz4.NewWriter(f)
	default:
		return WriteBlocks(f, blocks)
	}

	if err := WriteBlocks(w, blocks); err != nil {
		_ = w.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
