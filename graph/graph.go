// Package graph implements the loop-nest intermediate representation: a
// directed, possibly cyclic structure of arena-owned nodes describing
// control flow through an affine loop nest's iteration space.
//
// # Construction Model
//
// Nodes are allocated through the New* constructors and addressed by dense
// core.NodeID handles. Successor links are mutable after construction via
// the Set* patchers, which is what makes cycles expressible: allocate the
// loop body, allocate the guarding Branch, then patch the Branch's then
// link back to the body's first node.
//
// # Phases
//
// All construction and patching must finish before any traversal starts.
// The graph provides no synchronization; once the build phase ends it is
// treated as read-only.
package graph

import (
	"github.com/affinetrace/reusedist/affine"
	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/internal/arena"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindStart        // single entry marker
	KindEnd          // terminal marker, no successors
	KindAccess       // memory reference site
	KindUpdate       // induction-variable assignment
	KindBranch       // loop-bound test with then/else successors
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindAccess:
		return "Access"
	case KindUpdate:
		return "Update"
	case KindBranch:
		return "Branch"
	default:
		return "Invalid"
	}
}

// Node is a fixed-size, arena-owned node record. Which fields are
// meaningful depends on Kind:
//
//	Start:  Next
//	End:    -
//	Access: MemRef, Expr (offset), Next
//	Update: IVar, Expr (assigned value), Next
//	Branch: IVar, Expr (bound), Then, Else
//
// Absent links are core.NilNode.
type Node struct {
	Kind   Kind
	MemRef core.MemRef
	IVar   core.IVar
	Expr   core.ExprID
	Next   core.NodeID
	Then   core.NodeID
	Else   core.NodeID
}

// Options configures a Graph.
type Options struct {
	// ChunkSize is the arena chunk size in node records.
	ChunkSize int
}

// DefaultOptions are the defaults used by New.
var DefaultOptions = Options{
	ChunkSize: arena.DefaultChunkSize,
}

// Graph owns the node arena of one analysis session. Node handles stay
// valid and stable for the graph's whole lifetime; nothing is individually
// freed.
type Graph struct {
	nodes *arena.Slab[Node]
	exprs *affine.Pool

	opts Options
}

// New creates an empty graph whose node fields reference expressions in
// the given pool.
func New(exprs *affine.Pool, optFns ...func(o *Options)) *Graph {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Graph{
		nodes: arena.NewSlab[Node](opts.ChunkSize),
		exprs: exprs,
		opts:  opts,
	}
}

// NewStart allocates a Start node. next may be NilNode.
func (g *Graph) NewStart(next core.NodeID) core.NodeID {
	id, n := g.nodes.Alloc()
	n.Kind = KindStart
	n.Next = next
	return core.NodeID(id)
}

// NewEnd allocates an End node.
func (g *Graph) NewEnd() core.NodeID {
	id, n := g.nodes.Alloc()
	n.Kind = KindEnd
	return core.NodeID(id)
}

// NewAccess allocates an Access node for the given memory reference and
// offset expression. next may be NilNode.
func (g *Graph) NewAccess(memref core.MemRef, offset core.ExprID, next core.NodeID) core.NodeID {
	id, n := g.nodes.Alloc()
	n.Kind = KindAccess
	n.MemRef = memref
	n.Expr = offset
	n.Next = next
	return core.NodeID(id)
}

// NewUpdate allocates an Update node assigning expr to ivar. next may be
// NilNode.
func (g *Graph) NewUpdate(ivar core.IVar, expr core.ExprID, next core.NodeID) core.NodeID {
	id, n := g.nodes.Alloc()
	n.Kind = KindUpdate
	n.IVar = ivar
	n.Expr = expr
	n.Next = next
	return core.NodeID(id)
}

// NewBranch allocates a Branch node testing ivar against bound. then
// models "condition holds, continue" and may later be patched to cycle
// back to an earlier node; els models "condition fails, proceed past the
// loop". Both may be NilNode.
func (g *Graph) NewBranch(ivar core.IVar, bound core.ExprID, then, els core.NodeID) core.NodeID {
	id, n := g.nodes.Alloc()
	n.Kind = KindBranch
	n.IVar = ivar
	n.Expr = bound
	n.Then = then
	n.Else = els
	return core.NodeID(id)
}

// Node returns the record for id. Passing NilNode or an id not produced by
// this graph is a contract violation and panics. The returned record is
// shared with the graph; callers must not mutate it outside the build
// phase.
func (g *Graph) Node(id core.NodeID) *Node {
	return g.nodes.Get(uint32(id))
}

// Len returns the number of nodes. Valid ids run from 1 through Len.
func (g *Graph) Len() int { return g.nodes.Len() }

// SetNext overwrites the successor link of a Start, Access or Update node
// in place. A NilNode target or a node of any other kind is a silent
// no-op.
func (g *Graph) SetNext(id, next core.NodeID) {
	if id.IsNil() {
		return
	}
	n := g.Node(id)
	switch n.Kind {
	case KindStart, KindAccess, KindUpdate:
		n.Next = next
	}
}

// SetThen overwrites a Branch node's then link in place. A NilNode target
// or a node of any other kind is a silent no-op.
func (g *Graph) SetThen(id, then core.NodeID) {
	if id.IsNil() {
		return
	}
	n := g.Node(id)
	if n.Kind == KindBranch {
		n.Then = then
	}
}

// SetElse overwrites a Branch node's else link in place. A NilNode target
// or a node of any other kind is a silent no-op.
func (g *Graph) SetElse(id, els core.NodeID) {
	if id.IsNil() {
		return
	}
	n := g.Node(id)
	if n.Kind == KindBranch {
		n.Else = els
	}
}
