package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affinetrace/reusedist/core"
)

func TestFormatLinear(t *testing.T) {
	g, p := newTestGraph()

	end := g.NewEnd()
	acc := g.NewAccess(0, p.Intern("i*4"), end)
	start := g.NewStart(acc)

	assert.Equal(t, "Start(Access(0, i*4, End))", g.Format(start))
}

func TestFormatNilRoot(t *testing.T) {
	g, _ := newTestGraph()
	assert.Equal(t, "", g.Format(core.NilNode))
}

func TestFormatDeadEnd(t *testing.T) {
	g, p := newTestGraph()

	// An absent successor is distinct from reaching End.
	acc := g.NewAccess(3, p.Intern("i"), core.NilNode)
	start := g.NewStart(acc)

	assert.Equal(t, "Start(Access(3, i, ))", g.Format(start))
}

func TestFormatCycle(t *testing.T) {
	g, p := newTestGraph()

	end := g.NewEnd()
	acc := g.NewAccess(0, p.Intern("i*8"), core.NilNode)
	upd := g.NewUpdate(0, p.Intern("i+1"), core.NilNode)
	br := g.NewBranch(0, p.Intern("n"), core.NilNode, end)
	start := g.NewStart(acc)
	g.SetNext(acc, upd)
	g.SetNext(upd, br)
	g.SetThen(br, acc)

	// The back-edge target is on the rendering path, so it renders as an
	// ellipsis instead of recursing forever.
	assert.Equal(t,
		"Start(Access(0, i*8, Update(0, i+1, Branch(0, n, ..., End))))",
		g.Format(start))
}

func TestFormatOneSidedBranch(t *testing.T) {
	g, p := newTestGraph()

	end := g.NewEnd()
	br := g.NewBranch(2, p.Intern("m"), end, core.NilNode)
	start := g.NewStart(br)

	assert.Equal(t, "Start(Branch(2, m, End, ))", g.Format(start))
}

func TestFormatSharedSubtree(t *testing.T) {
	g, p := newTestGraph()

	// Both branch sides point at the same End node. It is not on the path
	// twice at once, so it renders fully both times.
	end := g.NewEnd()
	br := g.NewBranch(0, p.Intern("n"), end, end)

	assert.Equal(t, "Branch(0, n, End, End)", g.Format(br))
}
