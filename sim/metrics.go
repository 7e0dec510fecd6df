package sim

// MetricsObserver defines the interface for observing simulation events.
type MetricsObserver interface {
	// OnIndex is called when the indexing pass completes.
	OnIndex(sites int)

	// OnAccess is called once per access event.
	OnAccess(firstTouch bool)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (o *NoopMetricsObserver) OnIndex(sites int)        {}
func (o *NoopMetricsObserver) OnAccess(firstTouch bool) {}
