package reusedist

import (
	"context"

	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/sim"
)

// Extractor is the front-end hand-off: it lowers an affine loop nest out
// of a source artifact and materializes it in the session's graph, using
// the construction and patch operations. The extraction itself is outside
// this core.
type Extractor interface {
	// ExtractAffineLoop builds the graph for the named source and returns
	// its root. found is false when the source contains no affine loop;
	// that is not an error, and callers must check it before indexing.
	ExtractAffineLoop(ctx context.Context, source string) (root core.NodeID, found bool, err error)
}

// Driver is the contract of the external loop interpreter. It owns address
// computation and execution order; this core only consumes the resulting
// event stream.
type Driver interface {
	// Initialize performs one-time global setup. It must complete before
	// any extraction.
	Initialize() error

	// RunSimulation executes the loop nest rooted at root and reports
	// every memory access to sc.Access, strictly in execution order,
	// translating addresses to block ids via sc.MemrefVaddr, sc.BlockSize
	// and sc.BlockOf.
	RunSimulation(ctx context.Context, sc *sim.Context, root core.NodeID) error
}
