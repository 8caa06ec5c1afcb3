package layout

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/pdfblocks/rtree"
)

// Config controls how pages are indexed.
type Config struct {
	// MinEntries and MaxEntries are the node fan-out bounds of each page's
	// R-tree.
	MinEntries int
	MaxEntries int

	// CacheSize is the number of query results cached per page. Zero
	// disables caching.
	CacheSize int64

	// Workers bounds the number of pages built concurrently by
	// BuildDocument. Zero or less means one per page.
	Workers int

	Logger  *rtree.Logger
	Metrics rtree.MetricsCollector
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MinEntries: 2,
		MaxEntries: 50,
		CacheSize:  256,
		Workers:    4,
	}
}

func (c Config) treeOptions() []rtree.Option {
	var opts []rtree.Option
	if c.Logger != nil {
		opts = append(opts, rtree.WithLogger(c.Logger))
	}
	if c.Metrics != nil {
		opts = append(opts, rtree.WithMetricsCollector(c.Metrics))
	}
	return opts
}

// Mode selects the spatial predicate a Query applies.
type Mode int

const (
	// ModeIntersects matches blocks touching or overlapping the region.
	ModeIntersects Mode = iota
	// ModeContains matches blocks lying entirely inside the region.
	ModeContains
	// ModeContaining matches blocks that enclose the region.
	ModeContaining
	// ModeOverlapping matches blocks whose area overlaps the region by at
	// least the query's MinRatio.
	ModeOverlapping
)

var modeNames = [...]string{"intersects", "contains", "containing", "overlapping"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Query describes a region query on a page.
type Query struct {
	Mode     Mode
	BBox     rtree.BBox
	MinRatio float64
	Order    rtree.Ordering
}

func (q Query) key() string {
	return fmt.Sprintf("%d %g %g %g %g %g %d",
		q.Mode, q.BBox.MinX, q.BBox.MinY, q.BBox.MaxX, q.BBox.MaxY, q.MinRatio, q.Order)
}

// Page indexes the blocks of a single document page.
type Page struct {
	Number int

	mu     sync.RWMutex
	tree   *rtree.RTree[uint32]
	blocks map[uint32]Block
	cache  *ristretto.Cache[string, []rtree.Entry[uint32]]
}

// NewPage creates an empty page index.
func NewPage(number int, cfg Config) (*Page, error) {
	tree, err := rtree.New[uint32](cfg.MinEntries, cfg.MaxEntries, cfg.treeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	p := &Page{
		Number: number,
		tree:   tree,
		blocks: make(map[uint32]Block),
	}
	if cfg.CacheSize > 0 {
		p.cache, err = ristretto.NewCache(&ristretto.Config[string, []rtree.Entry[uint32]]{
			NumCounters:        cfg.CacheSize * 10,
			MaxCost:            cfg.CacheSize,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: cache: %w", number, err)
		}
	}
	return p, nil
}

// Add indexes a block. Block IDs are unique within a page.
func (p *Page) Add(b Block) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.blocks[b.ID]; ok {
		return &DuplicateBlockError{ID: b.ID, Page: p.Number}
	}
	if err := p.tree.Insert(b.BBox, b.ID); err != nil {
		return fmt.Errorf("block %d: %w", b.ID, err)
	}
	p.blocks[b.ID] = b
	p.invalidate()
	return nil
}

// Remove drops the block with the given ID, reporting whether it was present.
func (p *Page) Remove(id uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.blocks[id]
	if !ok {
		return false
	}
	if !p.tree.Delete(b.BBox, id) {
		panic(fmt.Sprintf("block %d indexed but missing from tree", id))
	}
	delete(p.blocks, id)
	p.invalidate()
	return true
}

func (p *Page) invalidate() {
	if p.cache != nil {
		p.cache.Clear()
	}
}

// Block returns the block with the given ID.
func (p *Page) Block(id uint32) (Block, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.blocks[id]
	return b, ok
}

// Len returns the number of blocks on the page.
func (p *Page) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.blocks)
}

// Height returns the height of the page's R-tree.
func (p *Page) Height() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tree.Height()
}

// Margin returns the smallest box enclosing every block on the page. It
// reports false for an empty page.
func (p *Page) Margin() (rtree.BBox, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tree.Bounds()
}

// Query returns the blocks matching q in q.Order.
func (p *Page) Query(q Query) ([]Block, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entries, err := p.queryEntries(q)
	if err != nil {
		return nil, err
	}
	return p.resolve(entries), nil
}

// queryEntries runs q through the cache. The caller holds p.mu.
func (p *Page) queryEntries(q Query) ([]rtree.Entry[uint32], error) {
	if err := q.BBox.Validate(); err != nil {
		return nil, err
	}
	key := q.key()
	if p.cache != nil {
		if entries, ok := p.cache.Get(key); ok {
			return entries, nil
		}
	}

	seq, err := p.search(q)
	if err != nil {
		return nil, err
	}
	var entries []rtree.Entry[uint32]
	for e := range seq {
		entries = append(entries, e)
	}
	rtree.SortEntries(entries, q.Order)

	if p.cache != nil {
		p.cache.Set(key, entries, 1)
		p.cache.Wait()
	}
	return entries, nil
}

func (p *Page) search(q Query) (iter.Seq[rtree.Entry[uint32]], error) {
	switch q.Mode {
	case ModeIntersects:
		return p.tree.IntersectsEntries(q.BBox), nil
	case ModeContains:
		return p.tree.ContainsEntries(q.BBox), nil
	case ModeContaining:
		return p.tree.ContainingEntries(q.BBox), nil
	case ModeOverlapping:
		return p.tree.OverlappingEntries(q.BBox, q.MinRatio), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, q.Mode)
	}
}

// resolve maps entries to blocks. The caller holds p.mu.
func (p *Page) resolve(entries []rtree.Entry[uint32]) []Block {
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		if b, ok := p.blocks[e.Payload]; ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Nearest returns up to k blocks closest to the point (x, y), nearest first.
// A negative maxDistance means no limit.
func (p *Page) Nearest(x, y float64, k int, maxDistance float64) ([]Block, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	target := rtree.Point(x, y)
	if err := target.Validate(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resolve(p.tree.NearestEntries(target, k, maxDistance)), nil
}

// Ordered returns every block on the page in the given reading order.
func (p *Page) Ordered(order rtree.Ordering) []Block {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resolve(p.tree.All(order))
}

// Select returns the union of the blocks matched by each query.
func (p *Page) Select(queries ...Query) (*Selection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sel := NewSelection()
	for _, q := range queries {
		entries, err := p.queryEntries(q)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			sel.Add(e.Payload)
		}
	}
	return sel, nil
}

// Blocks returns the selected blocks still on the page in the given order.
func (p *Page) Blocks(sel *Selection, order rtree.Ordering) []Block {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var entries []rtree.Entry[uint32]
	for _, e := range p.tree.All(rtree.OrderInsertion) {
		if sel.Contains(e.Payload) {
			entries = append(entries, e)
		}
	}
	rtree.SortEntries(entries, order)
	return p.resolve(entries)
}

// Close releases the page's query cache.
func (p *Page) Close() {
	if p.cache != nil {
		p.cache.Close()
	}
}
