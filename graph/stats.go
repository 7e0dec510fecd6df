package graph

import (
	"fmt"

	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/internal/arena"
)

// Stats summarizes a graph's shape.
type Stats struct {
	Nodes    int
	Starts   int
	Ends     int
	Accesses int
	Updates  int
	Branches int
	Arena    arena.Stats
}

// Stats walks the node table and returns per-kind counts.
func (g *Graph) Stats() Stats {
	st := Stats{
		Nodes: g.Len(),
		Arena: g.nodes.Stats(),
	}

	for id := core.NodeID(1); int(id) <= g.Len(); id++ {
		switch g.Node(id).Kind {
		case KindStart:
			st.Starts++
		case KindEnd:
			st.Ends++
		case KindAccess:
			st.Accesses++
		case KindUpdate:
			st.Updates++
		case KindBranch:
			st.Branches++
		}
	}

	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("Graph{nodes: %d, start: %d, end: %d, access: %d, update: %d, branch: %d}",
		s.Nodes, s.Starts, s.Ends, s.Accesses, s.Updates, s.Branches)
}
