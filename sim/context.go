// Package sim implements the reuse-interval histogram engine: a
// session-scoped simulation context that indexes the Access nodes of a
// graph and folds an ordered stream of memory-access events into one
// reuse-interval histogram per access site.
//
// # Phases
//
// A Context is bound to one graph. PopulateNodeInfo runs exactly once
// after the graph's build phase, then an external driver feeds Access
// events strictly in execution order. Read-only queries may interleave
// with events. No synchronization is provided; the phase discipline is
// enforced by the caller.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/graph"
)

// ErrInvalidBlockSize is returned when the configured block size is zero.
var ErrInvalidBlockSize = errors.New("sim: block size must be positive")

// Options configures a Context.
type Options struct {
	// Logger receives structured diagnostics. Nil disables logging.
	Logger *slog.Logger

	// Metrics observes indexing and access events.
	Metrics MetricsObserver
}

// DefaultOptions are the defaults used by New.
var DefaultOptions = Options{
	Metrics: &NoopMetricsObserver{},
}

// Context is the per-session simulation state: the logical clock, the
// dense access-site index and the per-site reuse-interval histograms.
type Context struct {
	g         *graph.Graph
	blockSize uint64
	vaddrs    []uint64

	logicTime uint64
	sites     map[core.NodeID]core.SiteIndex
	hists     []Histogram
	lastSeen  map[core.BlockID]uint64

	blocks      *roaring64.Bitmap // distinct blocks ever touched
	events      uint64
	firstTouch  uint64
	reuseEvents uint64

	logger  *slog.Logger
	metrics MetricsObserver
}

// New creates a simulation context bound to g. blockSize is the memory
// block granularity; vaddrs maps each MemRef id to its base virtual
// address and is owned by the caller but must stay constant for the
// session.
func New(g *graph.Graph, blockSize uint64, vaddrs []uint64, optFns ...func(o *Options)) (*Context, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if blockSize == 0 {
		return nil, ErrInvalidBlockSize
	}
	if opts.Metrics == nil {
		opts.Metrics = &NoopMetricsObserver{}
	}

	return &Context{
		g:         g,
		blockSize: blockSize,
		vaddrs:    vaddrs,
		sites:     make(map[core.NodeID]core.SiteIndex),
		lastSeen:  make(map[core.BlockID]uint64),
		blocks:    roaring64.New(),
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}, nil
}

// PopulateNodeInfo walks the graph depth-first from root and assigns every
// newly discovered Access node the next sequential site index, starting at
// 0, initializing an empty histogram for it. The walk is cycle-guarded and
// idempotent: nodes indexed by an earlier call keep their index and
// histogram.
//
// A Branch recurses into its successors only when both then and else are
// present; a one-sided branch truncates the walk at that node.
func (c *Context) PopulateNodeInfo(root core.NodeID) {
	var visited bitset.BitSet
	c.populate(root, &visited)

	c.metrics.OnIndex(len(c.hists))
	if c.logger != nil {
		c.logger.Debug("indexing pass completed",
			"sites", len(c.hists),
			"nodes_visited", visited.Count(),
		)
	}
}

func (c *Context) populate(id core.NodeID, visited *bitset.BitSet) {
	if id.IsNil() || visited.Test(uint(id)) {
		return
	}
	visited.Set(uint(id))

	n := c.g.Node(id)
	switch n.Kind {
	case graph.KindStart, graph.KindUpdate:
		c.populate(n.Next, visited)
	case graph.KindAccess:
		if _, ok := c.sites[id]; !ok {
			c.sites[id] = core.SiteIndex(len(c.hists))
			c.hists = append(c.hists, make(Histogram))
		}
		c.populate(n.Next, visited)
	case graph.KindBranch:
		// Both successors must be present for either to be followed; a
		// one-sided branch truncates the walk here.
		if !n.Then.IsNil() && !n.Else.IsNil() {
			c.populate(n.Then, visited)
			c.populate(n.Else, visited)
		}
	}
}

// Access records one memory access at the given site, in execution order.
// The logical clock advances on every call. The first touch of a block
// contributes no histogram entry; every later touch increments the site's
// histogram at the elapsed logical-time interval since the block's
// previous touch.
//
// The reuse is attributed to the site performing it, not to the site of
// the prior touch. Calling Access with a site index that was not produced
// by the indexing pass is a contract violation and panics.
func (c *Context) Access(site core.SiteIndex, block core.BlockID) {
	t := c.logicTime
	c.logicTime++
	c.events++

	if int(site) >= len(c.hists) {
		panic(fmt.Sprintf("sim: unknown site %d (indexed %d)", site, len(c.hists)))
	}

	prev, ok := c.lastSeen[block]
	if !ok {
		c.lastSeen[block] = t
		c.blocks.Add(uint64(block))
		c.firstTouch++
		c.metrics.OnAccess(true)
		return
	}

	interval := t - prev // strictly positive: the clock advanced since prev
	c.hists[site][interval]++
	c.lastSeen[block] = t
	c.reuseEvents++
	c.metrics.OnAccess(false)
}

// NodeDist returns the reuse-interval histogram collected for the Access
// node id, or false if the indexing pass never reached that node. The
// returned histogram is live; callers must treat it as read-only.
func (c *Context) NodeDist(id core.NodeID) (Histogram, bool) {
	site, ok := c.sites[id]
	if !ok {
		return nil, false
	}
	return c.hists[site], true
}

// SiteOf returns the dense site index assigned to the Access node id.
func (c *Context) SiteOf(id core.NodeID) (core.SiteIndex, bool) {
	site, ok := c.sites[id]
	return site, ok
}

// MustSiteOf is SiteOf for callers holding an identity produced by the
// indexing pass. An unindexed id is a contract violation and panics.
func (c *Context) MustSiteOf(id core.NodeID) core.SiteIndex {
	site, ok := c.sites[id]
	if !ok {
		panic(fmt.Sprintf("sim: node %d was never indexed", id))
	}
	return site
}

// MemrefVaddr returns the configured base virtual address for a memory
// reference id. An id outside the configured table is a contract violation
// and panics.
func (c *Context) MemrefVaddr(m core.MemRef) uint64 {
	if int(m) >= len(c.vaddrs) {
		panic(fmt.Sprintf("sim: unknown memref %d (configured %d)", m, len(c.vaddrs)))
	}
	return c.vaddrs[m]
}

// BlockSize returns the configured block granularity.
func (c *Context) BlockSize() uint64 { return c.blockSize }

// BlockOf translates a virtual address to its block id.
func (c *Context) BlockOf(vaddr uint64) core.BlockID {
	return core.BlockID(vaddr / c.blockSize)
}

// LogicTime returns the current logical clock value, i.e. the number of
// access events observed so far.
func (c *Context) LogicTime() uint64 { return c.logicTime }

// Sites returns the number of indexed access sites.
func (c *Context) Sites() int { return len(c.hists) }
