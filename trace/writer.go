package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Writer appends access events to a trace stream in execution order.
// It is not safe for concurrent use; the simulation phase that produces
// events is single-threaded by contract.
type Writer struct {
	buf     *bufio.Writer
	zenc    *zstd.Encoder
	lzenc   *lz4.Writer
	w       io.Writer // innermost entry sink
	entries uint64
}

// NewWriter writes a trace header to w and returns a Writer appending
// entries after it. The Writer never closes w; callers own the underlying
// stream.
func NewWriter(w io.Writer, optFns ...func(o *Options)) (*Writer, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := writeHeader(w, headerInfo{
		Compression:      opts.Compression,
		CompressionLevel: opts.CompressionLevel,
	}); err != nil {
		return nil, err
	}

	tw := &Writer{
		buf: bufio.NewWriterSize(w, opts.BufferSize),
	}

	switch opts.Compression {
	case CompressionNone:
		tw.w = tw.buf
	case CompressionZstd:
		enc, err := zstd.NewWriter(tw.buf,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(opts.CompressionLevel)))
		if err != nil {
			return nil, fmt.Errorf("trace: failed to create zstd encoder: %w", err)
		}
		tw.zenc = enc
		tw.w = enc
	case CompressionLZ4:
		tw.lzenc = lz4.NewWriter(tw.buf)
		tw.w = tw.lzenc
	default:
		return nil, &ErrUnknownCompression{Compression: opts.Compression}
	}

	return tw, nil
}

// Append records one access event.
func (w *Writer) Append(e Entry) error {
	var buf [entrySize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Site))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(e.Block))

	if _, err := w.w.Write(buf[:]); err != nil {
		return fmt.Errorf("trace: failed to append entry: %w", err)
	}
	w.entries++
	return nil
}

// Entries returns the number of entries appended so far.
func (w *Writer) Entries() uint64 { return w.entries }

// Flush pushes buffered entries through the compressor to the underlying
// stream. The stream stays appendable.
func (w *Writer) Flush() error {
	if w.zenc != nil {
		if err := w.zenc.Flush(); err != nil {
			return fmt.Errorf("trace: failed to flush compressor: %w", err)
		}
	}
	if w.lzenc != nil {
		if err := w.lzenc.Flush(); err != nil {
			return fmt.Errorf("trace: failed to flush compressor: %w", err)
		}
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("trace: failed to flush buffer: %w", err)
	}
	return nil
}

// Close finalizes the compression frame and flushes. It does not close the
// underlying stream.
func (w *Writer) Close() error {
	if w.zenc != nil {
		if err := w.zenc.Close(); err != nil {
			return fmt.Errorf("trace: failed to close compressor: %w", err)
		}
	}
	if w.lzenc != nil {
		if err := w.lzenc.Close(); err != nil {
			return fmt.Errorf("trace: failed to close compressor: %w", err)
		}
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("trace: failed to flush buffer: %w", err)
	}
	return nil
}
