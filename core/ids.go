// Package core defines the dense identifier types shared across the
// reusedist packages.
package core

// NodeID is a dense, session-scoped identifier for a graph node.
// It is strictly 32-bit and is the node's index in the owning arena, so
// two NodeIDs denote the same node iff they are equal. There is no
// value-based node equality.
//
// ID 0 is reserved as the null link.
type NodeID uint32

// NilNode is the absent-successor value. It is distinct from a link to an
// End node: NilNode means "no further node at all".
const NilNode NodeID = 0

// IsNil reports whether the id is the null link.
func (id NodeID) IsNil() bool { return id == NilNode }

// ExprID is an opaque handle to an affine expression owned by the
// session's expression pool. Expressions are constructed by the front end;
// the core only carries the handle. ID 0 is reserved.
type ExprID uint32

// NilExpr is the absent-expression value.
const NilExpr ExprID = 0

// IsNil reports whether the id is the null expression handle.
func (id ExprID) IsNil() bool { return id == NilExpr }

// MemRef identifies the base array/pointer accessed by an Access node.
type MemRef uint32

// IVar identifies an induction variable of the loop nest.
type IVar uint32

// BlockID identifies a fixed-size memory granule (virtual address divided
// by the configured block size). It is the unit of reuse tracking.
type BlockID uint64

// SiteIndex is the dense, zero-based index assigned to an Access node by
// the simulation context's indexing pass, in first-discovery order. It is
// the key the external driver uses when reporting access events.
type SiteIndex uint32
