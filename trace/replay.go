package trace

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/affinetrace/reusedist/sim"
)

// ReplayOptions configures ReplayInto.
type ReplayOptions struct {
	// Rate caps replay at this many events per second. Zero means
	// unlimited.
	Rate float64

	// Burst is the limiter burst size when Rate is set.
	Burst int

	// ChannelDepth is the size of the decode pipeline buffer.
	ChannelDepth int
}

// DefaultReplayOptions are the defaults used by ReplayInto.
var DefaultReplayOptions = ReplayOptions{
	Burst:        64,
	ChannelDepth: 1024,
}

// WithRate paces the replay at eventsPerSec. Useful when replaying against
// an instrumented context whose observer hooks should not be saturated.
func WithRate(eventsPerSec float64) func(o *ReplayOptions) {
	return func(o *ReplayOptions) {
		o.Rate = eventsPerSec
	}
}

// ReplayInto decodes the trace and applies every event to the simulation
// context, strictly in recorded order. Decoding runs in a pipeline ahead
// of the applier, but a single goroutine issues all Access calls, so the
// context's single-threaded contract holds.
//
// It returns the number of events applied.
func ReplayInto(ctx context.Context, r *Reader, sc *sim.Context, optFns ...func(o *ReplayOptions)) (uint64, error) {
	opts := DefaultReplayOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}

	entries := make(chan Entry, opts.ChannelDepth)
	var applied uint64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(entries)
		return r.Replay(ctx, func(e Entry) error {
			select {
			case entries <- e:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	g.Go(func() error {
		for e := range entries {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
			}
			sc.Access(e.Site, e.Block)
			applied++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return applied, err
	}
	return applied, nil
}
