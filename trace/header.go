package trace

import (
	"encoding/binary"
	"fmt"
	"io"
)

var traceMagic = [4]byte{'R', 'D', 'T', '0'}

const (
	headerVersion = uint16(1)
	headerLen     = 16
)

type headerInfo struct {
	Compression      Compression
	CompressionLevel int
}

// Header layout, little-endian:
//
//	[Magic:4][Version:2][Compression:1][Level:1][Reserved:8]
func writeHeader(w io.Writer, info headerInfo) error {
	var buf [headerLen]byte
	copy(buf[0:4], traceMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], headerVersion)
	buf[6] = uint8(info.Compression)
	buf[7] = uint8(info.CompressionLevel)
	// buf[8:16] reserved

	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("trace: failed to write header: %w", err)
	}
	return nil
}

func readHeader(r io.Reader) (headerInfo, error) {
	var buf [headerLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return headerInfo{}, fmt.Errorf("trace: failed to read header: %w", err)
	}

	if [4]byte(buf[0:4]) != traceMagic {
		return headerInfo{}, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(buf[4:6]); v != headerVersion {
		return headerInfo{}, &ErrUnsupportedVersion{Version: v}
	}

	info := headerInfo{
		Compression:      Compression(buf[6]),
		CompressionLevel: int(buf[7]),
	}
	switch info.Compression {
	case CompressionNone, CompressionZstd, CompressionLZ4:
	default:
		return headerInfo{}, &ErrUnknownCompression{Compression: info.Compression}
	}
	return info, nil
}
