package cat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	DefaultPollInterval = time.Second
	DefaultBackoffMin   = time.Second
	DefaultBackoffMax   = 10 * time.Second
)

// Monitor keeps a controller link to a rig: it opens the port, sends the poll
// commands on every tick and reopens the port with capped exponential backoff
// when the link fails. Answers from the rig reach the handler like any other
// frame.
type Monitor struct {
	cfg      SerialConfig
	reg      *Registry
	handler  Handler
	commands []string
	interval time.Duration
	minWait  time.Duration
	maxWait  time.Duration
	opts     []ChannelOption
	log      zerolog.Logger

	opens     atomic.Int64
	connected atomic.Bool
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithPollCommands replaces the default "FA" and "FB" queries.
func WithPollCommands(cmds ...string) MonitorOption {
	return func(m *Monitor) { m.commands = slices.Clone(cmds) }
}

// WithPollInterval sets the time between poll rounds.
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.interval = d }
}

// WithReconnectBackoff bounds the wait between reopen attempts. The wait
// starts at lo and doubles up to hi.
func WithReconnectBackoff(lo, hi time.Duration) MonitorOption {
	return func(m *Monitor) { m.minWait, m.maxWait = lo, hi }
}

// WithMonitorChannel passes options to the channel of every port the monitor
// opens. The error policy is always PolicyDrop.
func WithMonitorChannel(opts ...ChannelOption) MonitorOption {
	return func(m *Monitor) { m.opts = append(m.opts, opts...) }
}

// WithMonitorLogger sets the logger for link state changes.
func WithMonitorLogger(l zerolog.Logger) MonitorOption {
	return func(m *Monitor) { m.log = l }
}

// NewMonitor returns a monitor for the port in cfg. Configuration errors are
// reported here rather than retried by Run.
func NewMonitor(cfg SerialConfig, reg *Registry, h Handler, opts ...MonitorOption) (*Monitor, error) {
	if err := ValidateSerialConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid serial port configuration: %w", err)
	}

	m := &Monitor{
		cfg:      cfg,
		reg:      reg,
		handler:  h,
		commands: []string{"FA", "FB"},
		interval: DefaultPollInterval,
		minWait:  DefaultBackoffMin,
		maxWait:  DefaultBackoffMax,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.opts = append(m.opts, WithErrorPolicy(PolicyDrop))

	if m.interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got: %v", m.interval)
	}
	if m.minWait <= 0 || m.maxWait < m.minWait {
		return nil, fmt.Errorf("invalid reconnect backoff %v..%v", m.minWait, m.maxWait)
	}
	if _, err := NewChannel(reg, h, m.opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Opens returns how many times the port has been opened.
func (m *Monitor) Opens() int64 { return m.opens.Load() }

// Connected reports whether a port is currently open.
func (m *Monitor) Connected() bool { return m.connected.Load() }

// Run polls until ctx is done. It returns nil on cancellation and only stops
// early if the port is closed without a read error.
func (m *Monitor) Run(ctx context.Context) error {
	wait := m.minWait
	for {
		port, err := Open(m.cfg, m.reg, m.handler, m.opts...)
		if err != nil {
			m.log.Warn().Err(err).Dur("retry_in", wait).Msg("open failed")
			if !sleepCtx(ctx, wait) {
				return nil
			}
			wait = min(wait*2, m.maxWait)
			continue
		}
		m.opens.Inc()
		m.connected.Store(true)
		m.log.Info().Str("port", m.cfg.PortName).Msg("link up")
		wait = m.minWait

		err = m.poll(ctx, port)
		m.connected.Store(false)
		if cerr := port.Close(); cerr != nil {
			m.log.Debug().Err(cerr).Msg("close after link loss")
		}
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		m.log.Warn().Err(err).Dur("retry_in", wait).Msg("link lost")
		if !sleepCtx(ctx, wait) {
			return nil
		}
		wait = min(wait*2, m.maxWait)
	}
}

// poll returns nil when ctx is done or the port was closed cleanly, and the
// link error otherwise.
func (m *Monitor) poll(ctx context.Context, port *Port) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		for _, cmd := range m.commands {
			if err := port.WriteCommand(ctx, cmd); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("polling %s: %w", cmd, err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-port.Done():
			return port.Err()
		case <-ticker.C:
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
