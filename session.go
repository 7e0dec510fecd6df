package reusedist

import (
	"context"

	"github.com/affinetrace/reusedist/affine"
	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/graph"
	"github.com/affinetrace/reusedist/sim"
)

// Options configures a Session.
type Options struct {
	// Logger receives structured diagnostics. Defaults to NoopLogger.
	Logger *Logger

	// Metrics observes indexing and access events.
	Metrics sim.MetricsObserver

	// GraphChunkSize is the node arena chunk size. Zero selects the
	// default.
	GraphChunkSize int
}

// DefaultOptions are the defaults used by New.
var DefaultOptions = Options{
	Metrics: &sim.NoopMetricsObserver{},
}

// Session is one analysis run: it owns the expression pool, the graph
// arena and, after Index, the simulation context. Everything a session
// allocates lives until the session is dropped; nothing is individually
// freed.
type Session struct {
	exprs *affine.Pool
	g     *graph.Graph
	sc    *sim.Context

	blockSize uint64
	vaddrs    []uint64

	opts   Options
	logger *Logger
	closed bool
}

// New creates a session with the given block granularity and the table
// mapping each MemRef id to its base virtual address.
func New(blockSize uint64, vaddrs []uint64, optFns ...func(o *Options)) (*Session, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if blockSize == 0 {
		return nil, ErrInvalidBlockSize
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = &sim.NoopMetricsObserver{}
	}

	exprs := affine.NewPool()
	g := graph.New(exprs, func(o *graph.Options) {
		if opts.GraphChunkSize > 0 {
			o.ChunkSize = opts.GraphChunkSize
		}
	})

	return &Session{
		exprs:     exprs,
		g:         g,
		blockSize: blockSize,
		vaddrs:    vaddrs,
		opts:      opts,
		logger:    opts.Logger,
	}, nil
}

// Exprs returns the session's expression pool.
func (s *Session) Exprs() *affine.Pool { return s.exprs }

// Graph returns the session's graph for construction and patching.
func (s *Session) Graph() *graph.Graph { return s.g }

// Index ends the build phase and runs the indexing pass from root,
// creating the simulation context. Calling Index again returns the same
// context without re-running the pass.
func (s *Session) Index(root core.NodeID) (*sim.Context, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if root.IsNil() {
		return nil, ErrNoRoot
	}
	if s.sc != nil {
		return s.sc, nil
	}

	sc, err := sim.New(s.g, s.blockSize, s.vaddrs,
		func(o *sim.Options) {
			o.Logger = s.logger.Logger
			o.Metrics = s.opts.Metrics
		})
	if err != nil {
		return nil, translateError(err)
	}
	sc.PopulateNodeInfo(root)
	s.sc = sc

	s.logger.LogIndex(context.Background(), sc.Sites(), s.g.Len())
	return sc, nil
}

// Sim returns the simulation context, or nil before Index has run.
func (s *Session) Sim() *sim.Context { return s.sc }

// Close tears the session down. All node ids, expression handles and
// histograms become invalid; storage is reclaimed at once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.exprs = nil
	s.g = nil
	s.sc = nil
	return nil
}
