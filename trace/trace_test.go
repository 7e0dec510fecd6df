package trace

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affinetrace/reusedist/affine"
	"github.com/affinetrace/reusedist/core"
	"github.com/affinetrace/reusedist/graph"
	"github.com/affinetrace/reusedist/sim"
)

func testEntries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{
			Site:  core.SiteIndex(i % 3),
			Block: core.BlockID(i * 7),
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
	}{
		{"none", CompressionNone},
		{"zstd", CompressionZstd},
		{"lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, func(o *Options) {
				o.Compression = tt.compression
			})
			require.NoError(t, err)

			want := testEntries(1000)
			for _, e := range want {
				require.NoError(t, w.Append(e))
			}
			require.NoError(t, w.Close())
			assert.Equal(t, uint64(1000), w.Entries())

			r, err := NewReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, tt.compression, r.Compression())

			var got []Entry
			for {
				var e Entry
				err := r.Next(&e)
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				got = append(got, e)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFlushKeepsStreamAppendable(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Append(Entry{Site: 1, Block: 2}))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Append(Entry{Site: 3, Block: 4}))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	var e Entry
	require.NoError(t, r.Next(&e))
	assert.Equal(t, Entry{Site: 1, Block: 2}, e)
	require.NoError(t, r.Next(&e))
	assert.Equal(t, Entry{Site: 3, Block: 4}, e)
	assert.Equal(t, io.EOF, r.Next(&e))
}

func TestHeaderValidation(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(bytes.Repeat([]byte{'x'}, headerLen)))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(traceMagic[:]))
		assert.Error(t, err)
	})

	t.Run("unsupported version", func(t *testing.T) {
		var buf [headerLen]byte
		copy(buf[0:4], traceMagic[:])
		buf[4] = 0xff
		buf[5] = 0xff

		_, err := NewReader(bytes.NewReader(buf[:]))
		var verr *ErrUnsupportedVersion
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, uint16(0xffff), verr.Version)
	})

	t.Run("unknown compression", func(t *testing.T) {
		var buf [headerLen]byte
		copy(buf[0:4], traceMagic[:])
		buf[4] = 1 // version
		buf[6] = 0x7f

		_, err := NewReader(bytes.NewReader(buf[:]))
		var cerr *ErrUnknownCompression
		require.ErrorAs(t, err, &cerr)
	})
}

func TestTruncatedEntryIsCorruption(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, func(o *Options) { o.Compression = CompressionNone })
	require.NoError(t, err)
	require.NoError(t, w.Append(Entry{Site: 1, Block: 1}))
	require.NoError(t, w.Close())

	// Chop the last entry mid-record.
	data := buf.Bytes()[:buf.Len()-4]

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	var e Entry
	err = r.Next(&e)
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReplayCallback(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	want := testEntries(100)
	for _, e := range want {
		require.NoError(t, w.Append(e))
	}
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	var got []Entry
	err = r.Replay(context.Background(), func(e Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplayCanceled(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for _, e := range testEntries(10) {
		require.NoError(t, w.Append(e))
	}
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.Replay(ctx, func(Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

// replaySim builds Start -> Access -> End and a context over it.
func replaySim(t *testing.T) (*sim.Context, core.NodeID) {
	t.Helper()
	p := affine.NewPool()
	g := graph.New(p)

	end := g.NewEnd()
	acc := g.NewAccess(0, p.Intern("i"), end)
	root := g.NewStart(acc)

	c, err := sim.New(g, 64, nil)
	require.NoError(t, err)
	c.PopulateNodeInfo(root)
	return c, acc
}

func TestReplayInto(t *testing.T) {
	// Record a stream, then verify replaying it produces the same
	// histograms as driving the context directly.
	events := []Entry{
		{Site: 0, Block: 1},
		{Site: 0, Block: 2},
		{Site: 0, Block: 1},
		{Site: 0, Block: 1},
		{Site: 0, Block: 2},
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for _, e := range events {
		require.NoError(t, w.Append(e))
	}
	require.NoError(t, w.Close())

	direct, directAcc := replaySim(t)
	for _, e := range events {
		direct.Access(e.Site, e.Block)
	}

	replayed, replayedAcc := replaySim(t)
	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	applied, err := ReplayInto(context.Background(), r, replayed)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(events)), applied)

	wantHist, _ := direct.NodeDist(directAcc)
	gotHist, _ := replayed.NodeDist(replayedAcc)
	assert.Equal(t, wantHist, gotHist)
	assert.Equal(t, direct.LogicTime(), replayed.LogicTime())
}

func TestReplayIntoRate(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, w.Append(Entry{Site: 0, Block: core.BlockID(i % 4)}))
	}
	require.NoError(t, w.Close())

	sc, _ := replaySim(t)
	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	// High enough not to slow the test; exercises the limiter path.
	applied, err := ReplayInto(context.Background(), r, sc, WithRate(1e6))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), applied)
}

func TestCompressionString(t *testing.T) {
	tests := []struct {
		c        Compression
		expected string
	}{
		{CompressionNone, "none"},
		{CompressionZstd, "zstd"},
		{CompressionLZ4, "lz4"},
		{Compression(9), "unknown(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.c.String())
	}
}
