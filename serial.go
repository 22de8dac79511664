package cat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Port binds a Channel to a serial port. A reader goroutine feeds every byte
// received into the channel, and handler replies are written back to the
// port. Controller commands can be sent with WriteCommand; they share a write
// lock with replies so frames never interleave.
type Port struct {
	port SerialPort
	cfg  SerialConfig

	channel    *Channel
	terminator byte
	log        zerolog.Logger

	writeMu sync.Mutex

	closeCh     chan struct{}
	doneCh      chan struct{}
	closed      atomic.Bool
	dispatching atomic.Bool
	readErr     atomic.Error
}

// Open opens the port described by cfg and starts dispatching incoming
// commands to h.
func Open(cfg SerialConfig, reg *Registry, h Handler, opts ...ChannelOption) (*Port, error) {
	if err := ValidateSerialConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid serial port configuration: %w", err)
	}

	if !cfg.SkipPortCheck {
		ok, err := isPortAvailable(cfg.PortName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("serial port %s is not available: %w", cfg.PortName, ErrPortNotOpen)
		}
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}

	sp, err := openPort(cfg.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.PortName, err)
	}

	if err := configurePort(sp, cfg); err != nil {
		return nil, handleOpenError(sp, err)
	}

	p, err := newPort(sp, cfg, reg, h, opts...)
	if err != nil {
		return nil, handleOpenError(sp, err)
	}
	p.log.Info().
		Str("port", cfg.PortName).
		Int("baud", mode.BaudRate).
		Msg("serial port open")
	return p, nil
}

func configurePort(sp SerialPort, cfg SerialConfig) error {
	// The reader loop needs to wake up to notice an idle link.
	timeout := cfg.ReadTimeout()
	if idle := cfg.IdleReset(); idle > 0 && (timeout == 0 || timeout > idle) {
		timeout = idle
	}
	if timeout > 0 {
		if err := sp.SetReadTimeout(timeout); err != nil {
			return fmt.Errorf("setting read timeout: %w", err)
		}
	}
	if err := sp.SetDTR(cfg.DTR); err != nil {
		return fmt.Errorf("setting DTR: %w", err)
	}
	if err := sp.SetRTS(cfg.RTS); err != nil {
		return fmt.Errorf("setting RTS: %w", err)
	}
	if err := sp.ResetInputBuffer(); err != nil {
		return fmt.Errorf("flushing input: %w", err)
	}
	return nil
}

// handleOpenError closes the port and joins any error from closing with the
// original error.
func handleOpenError(sp SerialPort, err error) error {
	if e := sp.Close(); e != nil {
		err = errors.Join(err, e)
	}
	return err
}

// newPort constructs a Port around an existing SerialPort.
func newPort(sp SerialPort, cfg SerialConfig, reg *Registry, h Handler, opts ...ChannelOption) (*Port, error) {
	o := channelOptions{terminator: DefaultTerminator, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Port{
		port:       sp,
		cfg:        cfg,
		terminator: o.terminator,
		log:        o.log.With().Str("port", cfg.PortName).Logger(),
		closeCh:    make(chan struct{}),
		doneCh:     make(chan struct{}),
	}

	ch, err := NewChannel(reg, h, append(slices.Clone(opts), WithReplySink(p))...)
	if err != nil {
		return nil, err
	}
	p.channel = ch

	go p.readerLoop()

	return p, nil
}

// Write sends raw bytes to the port. It is the channel's reply sink.
func (p *Port) Write(b []byte) (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	return p.writeAll(context.Background(), b)
}

// WriteCommand sends one controller command, appending the terminator if
// cmd lacks it. A configured write timeout bounds the call when ctx has no
// deadline of its own.
func (p *Port) WriteCommand(ctx context.Context, cmd string) error {
	if p.closed.Load() {
		return ErrClosed
	}

	if len(cmd) == 0 {
		return nil
	}

	// ensure terminator
	data := []byte(cmd)
	if data[len(data)-1] != p.terminator {
		data = append(data, p.terminator)
	}

	if _, ok := ctx.Deadline(); !ok && p.cfg.WriteTimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.WriteTimeout())
		defer cancel()
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	_, err := p.writeAll(ctx, data)
	return err
}

func (p *Port) writeAll(ctx context.Context, data []byte) (int, error) {
	written := 0
	for written < len(data) {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		n, err := p.port.Write(data[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// Channel returns the command channel fed by the port. Its Metrics may be
// read at any time; the channel itself belongs to the reader loop.
func (p *Port) Channel() *Channel { return p.channel }

// Done is closed when the reader loop has exited.
func (p *Port) Done() <-chan struct{} { return p.doneCh }

// Err returns the read error that stopped the reader loop, if any. It is nil
// after a clean Close.
func (p *Port) Err() error { return p.readErr.Load() }

// Close stops the reader loop and closes the port. It is safe to call
// multiple times. It waits for the reader loop to exit, except while a frame
// is being dispatched: a handler may close its own port, and Done then reports
// when the loop has finished.
func (p *Port) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(p.closeCh)

	// Close the underlying port first to unblock any in-flight Read calls.
	if err := p.port.Close(); err != nil {
		return err
	}

	// Wait for the reader loop to finish cleanup.
	if !p.dispatching.Load() {
		<-p.doneCh
	}
	p.log.Info().Msg("serial port closed")
	return nil
}

// readerLoop feeds received bytes into the channel until the port fails or
// is closed. A zero byte read is a read timeout; if a partial frame has been
// waiting longer than the idle reset interval it is dropped.
func (p *Port) readerLoop() {
	defer close(p.doneCh)

	buf := getReadBuf()
	defer putReadBuf(buf)

	idle := p.cfg.IdleReset()
	last := time.Now()

	for {
		select {
		case <-p.closeCh:
			return
		default:
		}

		n, err := p.port.Read(buf)
		if err != nil {
			if !p.closed.Load() {
				p.readErr.Store(err)
				p.log.Error().Err(err).Msg("serial read failed")
			}
			return
		}
		if n == 0 {
			if idle > 0 && p.channel.Buffered() > 0 && time.Since(last) >= idle {
				p.channel.Reset()
				p.log.Debug().Dur("idle", idle).Msg("partial frame dropped after idle timeout")
			}
			continue
		}
		last = time.Now()

		p.dispatching.Store(true)
		_, err = p.channel.Write(buf[:n])
		p.dispatching.Store(false)
		if err != nil && !p.closed.Load() {
			p.log.Warn().Err(err).Msg("reply write failed")
		}
	}
}
