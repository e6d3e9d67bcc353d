package cache

// Metrics exposes the observability hooks an engine calls on every
// operation. A NoopMetrics implementation is used by default; plug
// metrics/prom.Adapter (or any other implementation) to export them.
type Metrics interface {
	Hit()
	Miss()
	Size(entries int)
}

// NoopMetrics is a Metrics implementation that discards every call.
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Size(int) {}
