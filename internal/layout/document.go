package layout

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Document is a set of indexed pages.
type Document struct {
	pages []*Page
	byNum map[int]*Page
}

// BuildDocument groups blocks by page and indexes each page concurrently.
// Blocks keep their relative order within a page, so insertion order
// follows the input.
func BuildDocument(ctx context.Context, blocks []Block, cfg Config) (*Document, error) {
	groups := make(map[int][]Block)
	for _, b := range blocks {
		groups[b.Page] = append(groups[b.Page], b)
	}
	numbers := make([]int, 0, len(groups))
	for n := range groups {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	pages := make([]*Page, len(numbers))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, n := range numbers {
		g.Go(func() error {
			p, err := buildPage(ctx, n, groups[n], cfg)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, p := range pages {
			if p != nil {
				p.Close()
			}
		}
		return nil, err
	}

	doc := &Document{pages: pages, byNum: make(map[int]*Page, len(pages))}
	for _, p := range pages {
		doc.byNum[p.Number] = p
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("document indexed", "pages", len(pages), "blocks", len(blocks))
	}
	return doc, nil
}

func buildPage(ctx context.Context, number int, blocks []Block, cfg Config) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := NewPage(number, cfg)
	if err != nil {
		return nil, err
	}
	for i, b := range blocks {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				p.Close()
				return nil, err
			}
		}
		if err := p.Add(b); err != nil {
			p.Close()
			return nil, fmt.Errorf("page %d: %w", number, err)
		}
	}
	return p, nil
}

// Pages returns the document's pages in ascending page number order.
func (d *Document) Pages() []*Page {
	return d.pages
}

// Page returns the page with the given number.
func (d *Document) Page(number int) (*Page, bool) {
	p, ok := d.byNum[number]
	return p, ok
}

// Len returns the total number of blocks in the document.
func (d *Document) Len() int {
	n := 0
	for _, p := range d.pages {
		n += p.Len()
	}
	return n
}

// Close releases every page.
func (d *Document) Close() {
	for _, p := range d.pages {
		p.Close()
	}
}
