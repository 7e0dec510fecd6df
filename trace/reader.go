package trace

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/affinetrace/reusedist/core"
)

// Reader decodes a trace stream entry by entry, in the recorded order.
type Reader struct {
	r    io.Reader // decoded entry stream
	zdec *zstd.Decoder
	hdr  headerInfo
	read uint64
}

// NewReader validates the trace header on r and returns a Reader over its
// entries.
func NewReader(r io.Reader) (*Reader, error) {
	buf := bufio.NewReader(r)

	hdr, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	tr := &Reader{hdr: hdr}
	switch hdr.Compression {
	case CompressionNone:
		tr.r = buf
	case CompressionZstd:
		dec, err := zstd.NewReader(buf)
		if err != nil {
			return nil, fmt.Errorf("trace: failed to create zstd decoder: %w", err)
		}
		tr.zdec = dec
		tr.r = dec
	case CompressionLZ4:
		tr.r = lz4.NewReader(buf)
	}

	return tr, nil
}

// Compression returns the codec recorded in the trace header.
func (r *Reader) Compression() Compression { return r.hdr.Compression }

// Next decodes the next entry into e. It returns io.EOF at the clean end
// of the stream; a stream truncated mid-entry is reported as corruption.
func (r *Reader) Next(e *Entry) error {
	var buf [entrySize]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("trace: corrupted at entry %d: %w", r.read, err)
		}
		return fmt.Errorf("trace: failed to read entry %d: %w", r.read, err)
	}

	e.Site = core.SiteIndex(binary.LittleEndian.Uint32(buf[0:4]))
	e.Block = core.BlockID(binary.LittleEndian.Uint64(buf[4:12]))
	r.read++
	return nil
}

// Replay decodes every remaining entry in order, invoking callback for
// each. It stops early when the callback errors or ctx is canceled.
func (r *Reader) Replay(ctx context.Context, callback func(Entry) error) error {
	for i := uint64(0); ; i++ {
		if i&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		var e Entry
		if err := r.Next(&e); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := callback(e); err != nil {
			return fmt.Errorf("trace: failed to replay entry %d: %w", r.read-1, err)
		}
	}
}

// Close releases decoder resources. It does not close the underlying
// stream.
func (r *Reader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
	}
	return nil
}
