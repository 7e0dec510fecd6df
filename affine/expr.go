// Package affine holds the opaque affine-expression boundary type.
//
// Expressions over induction variables (array offsets, loop bounds) are
// produced by the front end that lowers a compiled program into the graph
// IR. This core never evaluates them; it only stores handles and renders
// an opaque textual form for diagnostics.
package affine

import (
	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/internal/arena"
)

// Expr is an opaque affine expression. Its only observable property at
// this layer is a textual form.
type Expr struct {
	form string
}

func (e *Expr) String() string { return e.form }

// Pool owns every expression of one analysis session. Handles returned by
// Intern stay valid for the pool's whole lifetime; nothing is individually
// freed.
type Pool struct {
	slab *arena.Slab[Expr]
}

// NewPool creates an empty expression pool.
func NewPool() *Pool {
	return &Pool{slab: arena.NewSlab[Expr](arena.DefaultChunkSize)}
}

// Intern stores an expression form and returns its handle.
func (p *Pool) Intern(form string) core.ExprID {
	id, e := p.slab.Alloc()
	e.form = form
	return core.ExprID(id)
}

// Get returns the expression for a handle. Passing NilExpr or a handle not
// produced by this pool is a contract violation and panics.
func (p *Pool) Get(id core.ExprID) *Expr {
	return p.slab.Get(uint32(id))
}

// Len returns the number of interned expressions.
func (p *Pool) Len() int { return p.slab.Len() }
