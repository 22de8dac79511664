package cat

import (
	"errors"
	"fmt"
)

// Errors produced by live traffic. None of them is fatal: they describe what
// happened to one frame and the channel carries on with the next.
var (
	ErrOverflow            = errors.New("cat: frame exceeds maximum length")
	ErrUnknownCommand      = errors.New("cat: unknown command")
	ErrMalformedParameters = errors.New("cat: malformed parameters")
	ErrInvalidReply        = errors.New("cat: reply payload contains terminator")
	ErrHandlerPanic        = errors.New("cat: handler panicked")
)

// Registry construction errors. These only occur at initialization.
var (
	ErrInvalidMnemonic   = errors.New("cat: mnemonic must be two uppercase ASCII letters")
	ErrDuplicateMnemonic = errors.New("cat: duplicate mnemonic")
	ErrDuplicateID       = errors.New("cat: duplicate command identity")
	ErrUnsortedRegistry  = errors.New("cat: registry not sorted by mnemonic")
	ErrNilRegistry       = errors.New("cat: registry is nil")
	ErrUnknownID         = errors.New("cat: command identity not in registry")
	ErrInvalidTerminator = errors.New("cat: invalid terminator")
)

// Transport errors.
var (
	ErrClosed          = errors.New("cat: port closed")
	ErrPortNotOpen     = errors.New("cat: port not open")
	ErrInvalidPortName = errors.New("cat: invalid port name")
)

// CommandError describes a frame the engine refused to dispatch. It unwraps to
// ErrUnknownCommand or ErrMalformedParameters.
type CommandError struct {
	Mnemonic string
	Length   int
	Contract ParamContract
	Err      error
}

func (e *CommandError) Error() string {
	if errors.Is(e.Err, ErrMalformedParameters) {
		return fmt.Sprintf("%v: %q has %d parameter bytes, want %s", e.Err, e.Mnemonic, e.Length, e.Contract)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Mnemonic)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ReplyError wraps a failure of the reply sink, i.e. the transport.
type ReplyError struct {
	Err error
}

func (e *ReplyError) Error() string { return "cat: writing reply: " + e.Err.Error() }

func (e *ReplyError) Unwrap() error { return e.Err }
