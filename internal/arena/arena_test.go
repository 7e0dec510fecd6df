package arena

import "testing"

func TestSlab_New(t *testing.T) {
	t.Run("default chunk size", func(t *testing.T) {
		s := NewSlab[uint64](0)

		if s.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize=%d, got %d", DefaultChunkSize, s.chunkSize)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty slab, got len=%d", s.Len())
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		s := NewSlab[uint64](16)

		if s.chunkSize != 16 {
			t.Errorf("expected chunkSize=16, got %d", s.chunkSize)
		}
	})
}

func TestSlab_Alloc(t *testing.T) {
	t.Run("dense ids from one", func(t *testing.T) {
		s := NewSlab[int](8)

		for want := uint32(1); want <= 20; want++ {
			id, p := s.Alloc()
			if id != want {
				t.Fatalf("expected id=%d, got %d", want, id)
			}
			if *p != 0 {
				t.Fatalf("record %d not zeroed: %d", id, *p)
			}
		}
		if s.Len() != 20 {
			t.Errorf("expected len=20, got %d", s.Len())
		}
	})

	t.Run("pointers stable across growth", func(t *testing.T) {
		s := NewSlab[int](4)

		ptrs := make(map[uint32]*int)
		for i := 0; i < 64; i++ {
			id, p := s.Alloc()
			*p = int(id)
			ptrs[id] = p
		}

		for id, p := range ptrs {
			if got := s.Get(id); got != p {
				t.Fatalf("record %d moved: %p != %p", id, got, p)
			}
			if *p != int(id) {
				t.Fatalf("record %d corrupted: %d", id, *p)
			}
		}
	})

	t.Run("multiple chunks", func(t *testing.T) {
		s := NewSlab[uint64](4)

		for i := 0; i < 10; i++ {
			s.Alloc()
		}

		stats := s.Stats()
		if stats.ChunksAllocated <= 1 {
			t.Error("expected multiple chunks")
		}
		if stats.TotalAllocs != 10 {
			t.Errorf("expected 10 allocs, got %d", stats.TotalAllocs)
		}
	})
}

func TestSlab_Get(t *testing.T) {
	t.Run("null id panics", func(t *testing.T) {
		s := NewSlab[int](8)
		s.Alloc()

		defer func() {
			if recover() == nil {
				t.Error("expected panic for id 0")
			}
		}()
		s.Get(0)
	})

	t.Run("out of range panics", func(t *testing.T) {
		s := NewSlab[int](8)
		id, _ := s.Alloc()

		defer func() {
			if recover() == nil {
				t.Error("expected panic for unallocated id")
			}
		}()
		s.Get(id + 1)
	})
}
