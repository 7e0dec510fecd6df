package graph

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/affinetrace/reusedist/core"
)

// Format renders the graph depth-first starting at root, printing each
// node's tag and fields and recursing into successors. A node that is
// already on the current rendering path is rendered as "..." instead of
// being re-expanded, so rendering terminates on cyclic graphs.
//
// The output is purely diagnostic and has no effect on simulation.
func (g *Graph) Format(root core.NodeID) string {
	var sb strings.Builder
	var onPath bitset.BitSet
	g.format(&sb, root, &onPath)
	return sb.String()
}

func (g *Graph) format(sb *strings.Builder, id core.NodeID, onPath *bitset.BitSet) {
	if id.IsNil() {
		return
	}
	if onPath.Test(uint(id)) {
		sb.WriteString("...")
		return
	}
	onPath.Set(uint(id))
	defer onPath.Clear(uint(id))

	n := g.Node(id)
	switch n.Kind {
	case KindStart:
		sb.WriteString("Start(")
		g.format(sb, n.Next, onPath)
		sb.WriteByte(')')
	case KindEnd:
		sb.WriteString("End")
	case KindAccess:
		fmt.Fprintf(sb, "Access(%d, %s, ", n.MemRef, g.exprForm(n.Expr))
		g.format(sb, n.Next, onPath)
		sb.WriteByte(')')
	case KindUpdate:
		fmt.Fprintf(sb, "Update(%d, %s, ", n.IVar, g.exprForm(n.Expr))
		g.format(sb, n.Next, onPath)
		sb.WriteByte(')')
	case KindBranch:
		fmt.Fprintf(sb, "Branch(%d, %s, ", n.IVar, g.exprForm(n.Expr))
		if !n.Then.IsNil() {
			g.format(sb, n.Then, onPath)
			sb.WriteString(", ")
		}
		if !n.Else.IsNil() {
			g.format(sb, n.Else, onPath)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(n.Kind.String())
	}
}

func (g *Graph) exprForm(id core.ExprID) string {
	if id.IsNil() {
		return "?"
	}
	return g.exprs.Get(id).String()
}
