package cat

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks command pipeline statistics. The zero value is ready to use
// and may be shared by several channels.
type Metrics struct {
	// Input
	BytesIn       atomic.Int64 // Bytes fed to channels
	Frames        atomic.Int64 // Complete frames seen
	Overflows     atomic.Int64 // Frames discarded for exceeding the limit
	Resets        atomic.Int64 // Explicit reader resets
	LastFrameTime atomic.Int64 // Unix nanoseconds of the last complete frame

	// Outcomes
	Dispatched          atomic.Int64 // Frames handed to the handler
	UnknownCommands     atomic.Int64 // Frames with an unregistered mnemonic
	MalformedParameters atomic.Int64 // Frames failing the length contract
	HandlerPanics       atomic.Int64 // Handler invocations that panicked

	// Output
	Replies      atomic.Int64 // Reply frames written by handlers
	ErrorReplies atomic.Int64 // Error reply frames written by the channel
	BytesOut     atomic.Int64 // Bytes written to the reply sink
	ReplyErrors  atomic.Int64 // Reply sink write failures
}

// HealthStatus summarizes link quality.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusIdle      HealthStatus = "idle"
)

// MetricsSnapshot is a point in time copy of Metrics with derived rates.
type MetricsSnapshot struct {
	Timestamp time.Time `json:"timestamp"`

	BytesIn             int64 `json:"bytes_in"`
	Frames              int64 `json:"frames"`
	Overflows           int64 `json:"overflows"`
	Resets              int64 `json:"resets"`
	Dispatched          int64 `json:"dispatched"`
	UnknownCommands     int64 `json:"unknown_commands"`
	MalformedParameters int64 `json:"malformed_parameters"`
	HandlerPanics       int64 `json:"handler_panics"`
	Replies             int64 `json:"replies"`
	ErrorReplies        int64 `json:"error_replies"`
	BytesOut            int64 `json:"bytes_out"`
	ReplyErrors         int64 `json:"reply_errors"`

	RejectRate   float64    `json:"reject_rate"`   // Percent of frames not dispatched
	OverflowRate float64    `json:"overflow_rate"` // Overflows per hundred frames
	LastFrameAt  *time.Time `json:"last_frame_at,omitempty"`

	HealthStatus HealthStatus `json:"health_status"`
}

// Snapshot copies the counters and derives rates and health.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Timestamp:           time.Now(),
		BytesIn:             m.BytesIn.Load(),
		Frames:              m.Frames.Load(),
		Overflows:           m.Overflows.Load(),
		Resets:              m.Resets.Load(),
		Dispatched:          m.Dispatched.Load(),
		UnknownCommands:     m.UnknownCommands.Load(),
		MalformedParameters: m.MalformedParameters.Load(),
		HandlerPanics:       m.HandlerPanics.Load(),
		Replies:             m.Replies.Load(),
		ErrorReplies:        m.ErrorReplies.Load(),
		BytesOut:            m.BytesOut.Load(),
		ReplyErrors:         m.ReplyErrors.Load(),
	}

	if s.Frames > 0 {
		s.RejectRate = float64(s.UnknownCommands+s.MalformedParameters) / float64(s.Frames) * 100
		s.OverflowRate = float64(s.Overflows) / float64(s.Frames) * 100
	} else if s.Overflows > 0 {
		s.OverflowRate = 100
	}
	if ts := m.LastFrameTime.Load(); ts > 0 {
		t := time.Unix(0, ts)
		s.LastFrameAt = &t
	}

	s.HealthStatus = assessHealthStatus(&s)
	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.BytesIn, &m.Frames, &m.Overflows, &m.Resets, &m.LastFrameTime,
		&m.Dispatched, &m.UnknownCommands, &m.MalformedParameters, &m.HandlerPanics,
		&m.Replies, &m.ErrorReplies, &m.BytesOut, &m.ReplyErrors,
	} {
		c.Store(0)
	}
}

func assessHealthStatus(s *MetricsSnapshot) HealthStatus {
	if s.Frames == 0 && s.Overflows == 0 {
		return HealthStatusIdle
	}

	// Check for critical issues
	if s.RejectRate > 50.0 || s.OverflowRate > 50.0 || s.ReplyErrors > 5 {
		return HealthStatusUnhealthy
	}

	if s.RejectRate > 10.0 || s.OverflowRate > 10.0 || s.ReplyErrors > 0 || s.HandlerPanics > 0 {
		return HealthStatusDegraded
	}

	return HealthStatusHealthy
}

// MetricsBroadcaster publishes snapshots on a channel at a fixed interval.
type MetricsBroadcaster struct {
	metricsChannel   chan MetricsSnapshot
	emissionInterval time.Duration
	enabled          atomic.Bool

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewMetricsBroadcaster creates a broadcaster whose channel buffers
// channelSize snapshots.
func NewMetricsBroadcaster(channelSize int, interval time.Duration) *MetricsBroadcaster {
	return &MetricsBroadcaster{
		metricsChannel:   make(chan MetricsSnapshot, channelSize),
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
		emissionInterval: interval,
	}
}

// Start begins broadcasting snapshots of m. Calling Start again, or after
// Stop, is a no-op.
func (mb *MetricsBroadcaster) Start(m *Metrics) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.stopped || !mb.enabled.CompareAndSwap(false, true) {
		return
	}

	ticker := time.NewTicker(mb.emissionInterval)
	go func() {
		defer close(mb.doneCh)
		defer close(mb.metricsChannel)
		defer ticker.Stop()

		for {
			select {
			case <-mb.stopCh:
				return
			case <-ticker.C:
				// Never block the ticker on a slow consumer.
				select {
				case mb.metricsChannel <- m.Snapshot():
				default:
				}
			}
		}
	}()
}

// Stop ends broadcasting and closes the channel returned by C.
func (mb *MetricsBroadcaster) Stop() {
	mb.mu.Lock()
	if mb.stopped {
		mb.mu.Unlock()
		return
	}
	mb.stopped = true
	running := mb.enabled.Load()
	mb.mu.Unlock()

	close(mb.stopCh)
	if running {
		<-mb.doneCh
	} else {
		close(mb.metricsChannel)
	}
	mb.enabled.Store(false)
}

// Running reports whether the broadcaster is emitting.
func (mb *MetricsBroadcaster) Running() bool { return mb.enabled.Load() }

// C returns the snapshot channel.
func (mb *MetricsBroadcaster) C() <-chan MetricsSnapshot {
	return mb.metricsChannel
}
