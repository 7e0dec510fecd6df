package sim

import "fmt"

// Stats summarizes one simulation phase.
type Stats struct {
	Sites          int    // indexed access sites
	Events         uint64 // access events observed (= logical clock)
	FirstTouches   uint64 // events that touched a block for the first time
	Reuses         uint64 // events that produced a histogram entry
	DistinctBlocks uint64 // distinct blocks ever touched
}

// Stats returns the current simulation statistics.
func (c *Context) Stats() Stats {
	return Stats{
		Sites:          len(c.hists),
		Events:         c.events,
		FirstTouches:   c.firstTouch,
		Reuses:         c.reuseEvents,
		DistinctBlocks: c.blocks.GetCardinality(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Sim{sites: %d, events: %d, first: %d, reuses: %d, blocks: %d}",
		s.Sites, s.Events, s.FirstTouches, s.Reuses, s.DistinctBlocks)
}
