// Package reusedist models an affine loop nest as a graph-shaped IR and
// collects, while a driver replays the nest's memory accesses, a
// per-access-site histogram of reuse intervals: the logical-time gap
// between successive touches of the same memory block. The histograms
// feed downstream cache-behavior estimation without simulating an actual
// cache.
//
// # Quick Start
//
// Build a loop nest, index it, then feed access events:
//
//	s, _ := reusedist.New(64, []uint64{0x1000})
//	g := s.Graph()
//
//	end := g.NewEnd()
//	acc := g.NewAccess(0, s.Exprs().Intern("i*8"), core.NilNode)
//	upd := g.NewUpdate(0, s.Exprs().Intern("i+1"), core.NilNode)
//	br := g.NewBranch(0, s.Exprs().Intern("n"), core.NilNode, end)
//	root := g.NewStart(acc)
//	g.SetNext(acc, upd)
//	g.SetNext(upd, br)
//	g.SetThen(br, acc) // loop back-edge, patched after the Branch exists
//
//	sc, _ := s.Index(root)
//	site := sc.MustSiteOf(acc)
//	for t := 0; t < 3; t++ {
//	    sc.Access(site, sc.BlockOf(0x1000))
//	}
//	hist, _ := sc.NodeDist(acc) // {1: 2}
//
// # Phases
//
// A session moves through three strictly sequenced phases: build (node
// construction and link patching), indexing (exactly once), and
// simulation (an ordered stream of access events plus read-only queries).
// The core provides no synchronization; interleaving phases is a caller
// contract violation.
//
// # Key Features
//
//   - Arena-owned node table with dense ids and patchable links, so loop
//     cycles are built by allocating the Branch first and patching its
//     then-link back to the body
//   - Cycle-safe depth-first graph rendering for diagnostics
//   - Amortized O(1) per-event reuse-interval accounting
//   - Trace record/replay (zstd/lz4) with optional pacing
//   - Pluggable trace storage (filesystem, S3-compatible)
package reusedist
