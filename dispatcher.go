package cat

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ReplyWriter is the output sink handed to a Handler. Each call sends one
// reply frame; the terminator is appended by the writer and must not appear in
// payload.
type ReplyWriter interface {
	Reply(payload []byte) error
	ReplyString(payload string) error
}

// Handler is the single surface through which matched and validated commands
// leave the engine. params must not be retained after HandleCommand returns.
// Handlers run on the goroutine feeding the channel; for a Port that is its
// reader loop, so a handler must not block on the port's Done.
type Handler interface {
	HandleCommand(id CommandID, params []byte, w ReplyWriter)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(id CommandID, params []byte, w ReplyWriter)

func (f HandlerFunc) HandleCommand(id CommandID, params []byte, w ReplyWriter) {
	f(id, params, w)
}

// Router is a Handler that selects a per-command handler by identity through
// a slice indexed by CommandID. Routes are set up before the router is handed
// to a channel; it is not safe to change them while commands are dispatched.
type Router struct {
	registry *Registry
	routes   []Handler
	fallback Handler
}

// NewRouter returns a router with one empty slot per command in reg.
func NewRouter(reg *Registry) *Router {
	size := 0
	for _, d := range reg.descriptors {
		size = max(size, int(d.ID)+1)
	}
	return &Router{registry: reg, routes: make([]Handler, size)}
}

// Handle routes the command with identity id to h.
func (r *Router) Handle(id CommandID, h Handler) error {
	if _, ok := r.registry.ByID(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	r.routes[id] = h
	return nil
}

// HandleFunc routes id to f.
func (r *Router) HandleFunc(id CommandID, f func(id CommandID, params []byte, w ReplyWriter)) error {
	return r.Handle(id, HandlerFunc(f))
}

// HandleMnemonic routes the command named by mnemonic to h.
func (r *Router) HandleMnemonic(mnemonic string, h Handler) error {
	d, ok := r.registry.LookupString(mnemonic)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, mnemonic)
	}
	return r.Handle(d.ID, h)
}

// Fallback sets the handler for commands without a route. Without one those
// commands are accepted and ignored.
func (r *Router) Fallback(h Handler) { r.fallback = h }

// HandleCommand implements Handler.
func (r *Router) HandleCommand(id CommandID, params []byte, w ReplyWriter) {
	if int(id) < len(r.routes) && r.routes[id] != nil {
		r.routes[id].HandleCommand(id, params, w)
		return
	}
	if r.fallback != nil {
		r.fallback.HandleCommand(id, params, w)
	}
}

// Dispatcher invokes the handler for validated commands and frames whatever
// the handler replies. It is owned by one channel.
type Dispatcher struct {
	handler    Handler
	sink       io.Writer
	terminator byte
	scratch    []byte

	err     error
	replies int
	written int
}

// NewDispatcher returns a dispatcher writing reply frames to sink. A nil sink
// discards replies.
func NewDispatcher(h Handler, sink io.Writer, terminator byte) *Dispatcher {
	return &Dispatcher{handler: h, sink: sink, terminator: terminator}
}

// Dispatch calls the handler synchronously. It returns the first reply sink
// failure seen during the call, or ErrHandlerPanic if the handler panicked.
func (d *Dispatcher) Dispatch(id CommandID, params []byte) (err error) {
	d.err = nil
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: command %d: %v", ErrHandlerPanic, id, rec)
		}
	}()

	if d.handler != nil {
		d.handler.HandleCommand(id, params, d)
	}
	return d.err
}

// Reply implements ReplyWriter.
func (d *Dispatcher) Reply(payload []byte) error {
	if bytes.IndexByte(payload, d.terminator) >= 0 {
		return ErrInvalidReply
	}
	d.scratch = append(d.scratch[:0], payload...)
	return d.flush()
}

// ReplyString implements ReplyWriter.
func (d *Dispatcher) ReplyString(payload string) error {
	if strings.IndexByte(payload, d.terminator) >= 0 {
		return ErrInvalidReply
	}
	d.scratch = append(d.scratch[:0], payload...)
	return d.flush()
}

func (d *Dispatcher) flush() error {
	if d.sink == nil {
		return nil
	}
	d.scratch = append(d.scratch, d.terminator)
	n, err := d.sink.Write(d.scratch)
	d.written += n
	if err != nil {
		err = &ReplyError{Err: err}
		if d.err == nil {
			d.err = err
		}
		return err
	}
	d.replies++
	return nil
}

// takeCounts returns and clears the reply counters gathered since the last
// call.
func (d *Dispatcher) takeCounts() (replies, written int) {
	replies, written = d.replies, d.written
	d.replies, d.written = 0, 0
	return replies, written
}
