package reusedist

import (
	"errors"
	"fmt"

	"github.com/affinetrace/reusedist/sim"
)

var (
	// ErrInvalidBlockSize is returned when the configured block size is
	// zero.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrNoRoot is returned when Index is given the null node. Extraction
	// finding no affine loop is not an error, but indexing nothing is.
	ErrNoRoot = errors.New("no graph root")

	// ErrClosed is returned when a session is used after Close.
	ErrClosed = errors.New("session is closed")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sim.ErrInvalidBlockSize) {
		return fmt.Errorf("%w: %w", ErrInvalidBlockSize, err)
	}

	return err
}
