// Package arena provides a monotonic, chunked slab allocator for
// session-owned records.
//
// # Memory Management
//
// A Slab grows in fixed-size chunks and never reallocates or frees an
// individual record: once allocated, a record's address is stable for the
// slab's whole lifetime. There is no per-record free and no reference
// counting; dropping the slab releases everything at once.
//
// # Concurrency Model
//
// Slab is not safe for concurrent use. The owning session allocates during
// a single-threaded build phase and only reads afterwards.
package arena

import "fmt"

// DefaultChunkSize is the default number of records per chunk.
const DefaultChunkSize = 1024

// Stats tracks slab usage.
type Stats struct {
	ChunksAllocated uint64 // chunks ever created
	SlotsReserved   uint64 // total record slots backed by chunks
	SlotsUsed       uint64 // record slots handed out (includes the null slot)
	TotalAllocs     uint64 // cumulative Alloc calls
}

// Slab is an append-only allocator of fixed-size records of type T.
//
// Records are addressed by a dense uint32 id. Id 0 is reserved at
// construction as the null record, so 0 can serve as the "no reference"
// value in structures built on top of the slab.
type Slab[T any] struct {
	chunkSize uint32
	chunks    [][]T
	next      uint32 // next id to hand out; also the slot count in use
	allocs    uint64
}

// NewSlab creates a slab with the given chunk size. A chunkSize <= 0
// selects DefaultChunkSize. Slot 0 is reserved as null.
func NewSlab[T any](chunkSize int) *Slab[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := &Slab[T]{chunkSize: uint32(chunkSize)}
	s.grow()
	s.next = 1 // slot 0 reserved as null
	return s
}

func (s *Slab[T]) grow() {
	s.chunks = append(s.chunks, make([]T, s.chunkSize))
}

// Alloc reserves the next record slot and returns its id together with a
// pointer to the zeroed record. Allocation never fails; the slab grows to
// accommodate it. Previously returned ids and pointers stay valid.
func (s *Slab[T]) Alloc() (uint32, *T) {
	id := s.next
	if id == uint32(len(s.chunks))*s.chunkSize {
		s.grow()
	}
	s.next++
	s.allocs++
	return id, s.slot(id)
}

func (s *Slab[T]) slot(id uint32) *T {
	return &s.chunks[id/s.chunkSize][id%s.chunkSize]
}

// Get returns the record for id. Passing the null id or an id that was
// never handed out by Alloc is a contract violation and panics.
func (s *Slab[T]) Get(id uint32) *T {
	if id == 0 || id >= s.next {
		panic(fmt.Sprintf("arena: invalid id %d (allocated %d)", id, s.next-1))
	}
	return s.slot(id)
}

// Len returns the number of allocated records, excluding the reserved
// null slot. Valid ids run from 1 through Len.
func (s *Slab[T]) Len() int {
	return int(s.next) - 1
}

// Stats returns the current slab statistics.
func (s *Slab[T]) Stats() Stats {
	return Stats{
		ChunksAllocated: uint64(len(s.chunks)),
		SlotsReserved:   uint64(len(s.chunks)) * uint64(s.chunkSize),
		SlotsUsed:       uint64(s.next),
		TotalAllocs:     s.allocs,
	}
}

func (s *Slab[T]) String() string {
	st := s.Stats()
	return fmt.Sprintf("Slab{chunks: %d, reserved: %d, used: %d, allocs: %d}",
		st.ChunksAllocated, st.SlotsReserved, st.SlotsUsed, st.TotalAllocs)
}
