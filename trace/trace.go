// Package trace records and replays the ordered access-event stream an
// external driver feeds into a simulation context.
//
// A trace file is the simulation phase at rest: a self-describing header
// followed by fixed-size binary entries, one per access event, in
// execution order. Only the event stream is serialized; the graph itself
// never is.
//
// Features:
//   - Fixed 12-byte entries ([Site:4][Block:8], little-endian)
//   - Self-describing header (magic, version, compression codec and level)
//   - Optional zstd or lz4 compression
//   - Sequential replay with callback, or replay straight into a
//     simulation context with optional pacing
package trace

import (
	"errors"
	"fmt"

	"github.com/affinetrace/reusedist/core"
)

// Entry is one recorded access event.
type Entry struct {
	Site  core.SiteIndex
	Block core.BlockID
}

// entrySize is the on-disk size of one entry in bytes.
const entrySize = 12

// Compression identifies the stream compression codec of a trace file.
type Compression uint8

const (
	// CompressionNone stores entries uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd compresses the entry stream with zstd.
	CompressionZstd
	// CompressionLZ4 compresses the entry stream with lz4.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var (
	// ErrBadMagic is returned when a stream does not start with a trace
	// header.
	ErrBadMagic = errors.New("trace: bad magic")
)

// ErrUnsupportedVersion indicates a trace written by an incompatible
// format version.
type ErrUnsupportedVersion struct {
	Version uint16
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("trace: unsupported version %d", e.Version)
}

// ErrUnknownCompression indicates a compression codec this build does not
// support.
type ErrUnknownCompression struct {
	Compression Compression
}

func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("trace: unknown compression codec %d", uint8(e.Compression))
}

// Options configures a Writer.
type Options struct {
	// Compression selects the stream codec recorded in the header.
	Compression Compression

	// CompressionLevel tunes the zstd encoder. Ignored by other codecs.
	CompressionLevel int

	// BufferSize is the size of the write buffer in bytes.
	BufferSize int
}

// DefaultOptions are the defaults used by NewWriter.
var DefaultOptions = Options{
	Compression:      CompressionZstd,
	CompressionLevel: 3,
	BufferSize:       64 * 1024,
}
