package cat

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrorPolicy decides what a channel does with a frame it refuses to
// dispatch.
type ErrorPolicy uint8

const (
	// PolicyDrop discards rejected frames silently.
	PolicyDrop ErrorPolicy = iota
	// PolicyReply answers rejected frames with the configured error reply.
	PolicyReply
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyReply:
		return "reply"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", uint8(p))
	}
}

// ParseErrorPolicy parses "drop" or "reply". The empty string is "drop".
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "", "drop":
		return PolicyDrop, nil
	case "reply":
		return PolicyReply, nil
	default:
		return PolicyDrop, fmt.Errorf("unknown error policy %q", s)
	}
}

// OutcomeKind classifies what happened to one frame.
type OutcomeKind uint8

const (
	OutcomeDispatched OutcomeKind = iota + 1
	OutcomeOverflow
	OutcomeUnknown
	OutcomeMalformed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeOverflow:
		return "overflow"
	case OutcomeUnknown:
		return "unknown"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "invalid"
	}
}

// Outcome reports the fate of one frame. Command is the zero Descriptor for
// overflow and unknown outcomes, and Params holds the whole frame for unknown
// ones. Params aliases channel memory and is only valid until the sequence
// advances. Err is nil for a clean dispatch.
type Outcome struct {
	Kind    OutcomeKind
	Command Descriptor
	Params  []byte
	Err     error
}

type channelOptions struct {
	sink       io.Writer
	maxFrame   int
	terminator byte
	policy     ErrorPolicy
	errorReply string
	allowQuery bool
	log        zerolog.Logger
	metrics    *Metrics
}

// ChannelOption configures a Channel.
type ChannelOption func(*channelOptions)

// WithReplySink sets where reply frames are written. Without a sink replies
// are discarded.
func WithReplySink(w io.Writer) ChannelOption {
	return func(o *channelOptions) { o.sink = w }
}

// WithMaxFrameLength bounds the bytes buffered while waiting for a terminator.
func WithMaxFrameLength(n int) ChannelOption {
	return func(o *channelOptions) { o.maxFrame = n }
}

// WithTerminator replaces the ';' frame terminator.
func WithTerminator(b byte) ChannelOption {
	return func(o *channelOptions) { o.terminator = b }
}

// WithErrorPolicy selects what happens to unknown or malformed frames.
func WithErrorPolicy(p ErrorPolicy) ChannelOption {
	return func(o *channelOptions) { o.policy = p }
}

// WithErrorReply sets the payload sent under PolicyReply. The default is "?".
func WithErrorReply(payload string) ChannelOption {
	return func(o *channelOptions) { o.errorReply = payload }
}

// WithAllowQuery lets Exact commands through with an empty payload.
func WithAllowQuery(allow bool) ChannelOption {
	return func(o *channelOptions) { o.allowQuery = allow }
}

// WithLogger sets the logger for per-frame diagnostics, logged at debug level.
func WithLogger(l zerolog.Logger) ChannelOption {
	return func(o *channelOptions) { o.log = l }
}

// WithMetrics makes the channel count into m.
func WithMetrics(m *Metrics) ChannelOption {
	return func(o *channelOptions) { o.metrics = m }
}

// Channel is one logical command stream: a FrameReader, Matcher, Validator and
// Dispatcher owned together and sharing a Registry with other channels. Like
// the FrameReader it wraps, a Channel has a single producer.
type Channel struct {
	reader     *FrameReader
	matcher    Matcher
	validator  Validator
	dispatcher *Dispatcher

	policy     ErrorPolicy
	errorReply string
	log        zerolog.Logger
	metrics    *Metrics
}

// NewChannel assembles a channel dispatching to h.
func NewChannel(reg *Registry, h Handler, opts ...ChannelOption) (*Channel, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	o := channelOptions{
		maxFrame:   DefaultMaxFrameLength,
		terminator: DefaultTerminator,
		errorReply: "?",
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !validTerminator(o.terminator) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTerminator, o.terminator)
	}
	if strings.IndexByte(o.errorReply, o.terminator) >= 0 {
		return nil, fmt.Errorf("error reply %q: %w", o.errorReply, ErrInvalidReply)
	}
	if o.metrics == nil {
		o.metrics = &Metrics{}
	}

	return &Channel{
		reader:     NewFrameReader(o.maxFrame, o.terminator),
		matcher:    Matcher{Registry: reg},
		validator:  Validator{AllowQuery: o.allowQuery},
		dispatcher: NewDispatcher(h, o.sink, o.terminator),
		policy:     o.policy,
		errorReply: o.errorReply,
		log:        o.log,
		metrics:    o.metrics,
	}, nil
}

// Feed returns the outcomes of the frames completed by p. Nothing happens
// until the sequence is ranged; each frame is matched, validated and
// dispatched as the consumer reaches it. Stopping early keeps the unprocessed
// input for the next Feed.
func (c *Channel) Feed(p []byte) iter.Seq[Outcome] {
	frames := c.reader.Feed(p)
	counted := false
	return func(yield func(Outcome) bool) {
		if !counted {
			counted = true
			c.metrics.BytesIn.Add(int64(len(p)))
		}
		for fr := range frames {
			if !yield(c.process(fr)) {
				return
			}
		}
	}
}

// Write feeds p and drains every outcome. It always consumes all of p; the
// only error it returns is the first reply sink failure, as a *ReplyError.
func (c *Channel) Write(p []byte) (int, error) {
	var sinkErr error
	for out := range c.Feed(p) {
		var re *ReplyError
		if sinkErr == nil && errors.As(out.Err, &re) {
			sinkErr = re
		}
	}
	return len(p), sinkErr
}

// ReadFrom pumps r through the channel until EOF.
func (c *Channel) ReadFrom(r io.Reader) (int64, error) {
	buf := getReadBuf()
	defer putReadBuf(buf)

	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, werr := c.Write(buf[:n]); werr != nil {
				return total, werr
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Reset drops any partial frame. Transports call it after an inactivity
// timeout.
func (c *Channel) Reset() {
	c.reader.Reset()
	c.metrics.Resets.Inc()
}

// Buffered returns the number of bytes waiting for a terminator.
func (c *Channel) Buffered() int { return c.reader.Buffered() }

// Metrics returns the counters the channel writes to.
func (c *Channel) Metrics() *Metrics { return c.metrics }

func (c *Channel) process(fr FrameResult) Outcome {
	if fr.Kind == FrameOverflow {
		c.metrics.Overflows.Inc()
		c.log.Debug().Int("max", c.reader.MaxLength()).Msg("frame overflow, buffer discarded")
		return Outcome{Kind: OutcomeOverflow, Err: ErrOverflow}
	}

	c.metrics.Frames.Inc()
	c.metrics.LastFrameTime.Store(time.Now().UnixNano())

	m, ok := c.matcher.Match(fr.Frame)
	if !ok {
		c.metrics.UnknownCommands.Inc()
		n := min(2, len(fr.Frame))
		err := &CommandError{Mnemonic: string(fr.Frame[:n]), Length: len(fr.Frame) - n, Err: ErrUnknownCommand}
		c.log.Debug().Str("mnemonic", err.Mnemonic).Msg("unknown command")
		return c.reject(fr.Frame, Outcome{Kind: OutcomeUnknown, Params: fr.Frame, Err: err})
	}

	if err := c.validator.Validate(m.Command, m.Params); err != nil {
		c.metrics.MalformedParameters.Inc()
		c.log.Debug().Err(err).Msg("malformed parameters")
		return c.reject(fr.Frame, Outcome{Kind: OutcomeMalformed, Command: m.Command, Params: m.Params, Err: err})
	}

	err := c.dispatcher.Dispatch(m.Command.ID, m.Params)
	replies, written := c.dispatcher.takeCounts()
	c.metrics.Dispatched.Inc()
	c.metrics.Replies.Add(int64(replies))
	c.metrics.BytesOut.Add(int64(written))
	var re *ReplyError
	switch {
	case errors.As(err, &re):
		c.metrics.ReplyErrors.Inc()
	case errors.Is(err, ErrHandlerPanic):
		c.metrics.HandlerPanics.Inc()
		c.log.Error().Err(err).Str("mnemonic", m.Command.Mnemonic).Msg("handler panic recovered")
	}
	c.log.Debug().Str("mnemonic", m.Command.Mnemonic).Int("params", len(m.Params)).Int("replies", replies).Msg("dispatched")

	return Outcome{Kind: OutcomeDispatched, Command: m.Command, Params: m.Params, Err: err}
}

// reject applies the error policy to a refused frame. A frame equal to the
// error reply is never answered, so two replying ends cannot keep bouncing
// "?;" at each other. A sink failure while sending the error reply is joined
// to the outcome's error.
func (c *Channel) reject(frame []byte, out Outcome) Outcome {
	if c.policy != PolicyReply {
		return out
	}
	if string(frame) == c.errorReply {
		c.log.Debug().Str("frame", c.errorReply).Msg("error reply received, not answered")
		return out
	}
	err := c.dispatcher.ReplyString(c.errorReply)
	replies, written := c.dispatcher.takeCounts()
	c.metrics.ErrorReplies.Add(int64(replies))
	c.metrics.BytesOut.Add(int64(written))
	if err != nil {
		c.metrics.ReplyErrors.Inc()
		out.Err = errors.Join(out.Err, err)
	}
	return out
}
