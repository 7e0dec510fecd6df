package sim

import "sort"

// Histogram maps a reuse-interval length (the logical-time gap between two
// successive touches of the same block, always positive) to its occurrence
// count at one access site.
type Histogram map[uint64]uint64

// Count returns the occurrences of the given interval length.
func (h Histogram) Count(interval uint64) uint64 { return h[interval] }

// Total returns the number of recorded reuse events.
func (h Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Intervals returns the recorded interval lengths in ascending order.
func (h Histogram) Intervals() []uint64 {
	out := make([]uint64, 0, len(h))
	for iv := range h {
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
