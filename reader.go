package cat

import (
	"bytes"
	"iter"
)

const (
	// DefaultTerminator ends every CAT frame.
	DefaultTerminator byte = ';'

	// DefaultMaxFrameLength bounds the bytes buffered while waiting for a
	// terminator. The longest Yaesu answers (IF, OI, menu reads) are well
	// under this.
	DefaultMaxFrameLength = 128
)

// validTerminator reports whether b may end frames. Letters and digits make up
// mnemonics and payloads and are refused.
func validTerminator(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return false
	}
	return true
}

// FrameKind tells a FrameResult apart.
type FrameKind uint8

const (
	// FrameComplete carries the bytes seen before a terminator.
	FrameComplete FrameKind = iota + 1
	// FrameOverflow reports that the buffer passed its limit and was discarded.
	FrameOverflow
)

func (k FrameKind) String() string {
	switch k {
	case FrameComplete:
		return "complete"
	case FrameOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// FrameResult is one item produced by FrameReader.Feed. Frame is only valid
// until the sequence advances.
type FrameResult struct {
	Kind  FrameKind
	Frame []byte
}

// FrameReader turns an arbitrarily chunked byte stream into terminator
// delimited frames. It owns a fixed size buffer and is meant for exactly one
// producer; it must not be fed concurrently.
type FrameReader struct {
	buf        []byte
	pending    []byte
	max        int
	terminator byte
}

// NewFrameReader returns a reader that buffers at most maxLength bytes of an
// unterminated frame. Non-positive values select DefaultMaxFrameLength.
func NewFrameReader(maxLength int, terminator byte) *FrameReader {
	if maxLength <= 0 {
		maxLength = DefaultMaxFrameLength
	}
	return &FrameReader{
		buf:        make([]byte, 0, maxLength),
		max:        maxLength,
		terminator: terminator,
	}
}

// Feed returns the frames completed by p, in order. Bytes are consumed as the
// sequence is ranged, and only once: ranging it a second time yields nothing.
// If the consumer stops early, the unscanned rest of p is kept and scanned at
// the start of the next Feed.
func (r *FrameReader) Feed(p []byte) iter.Seq[FrameResult] {
	used := false
	return func(yield func(FrameResult) bool) {
		if used {
			return
		}
		used = true

		if len(r.pending) > 0 {
			held := r.pending
			r.pending = nil
			if n, ok := r.scan(held, yield); !ok {
				r.hold(held[n:], p)
				return
			}
		}
		if n, ok := r.scan(p, yield); !ok {
			r.hold(p[n:], nil)
		}
	}
}

// Reset discards a partially received frame and any held input. Transports
// call it after an inactivity timeout.
func (r *FrameReader) Reset() {
	r.buf = r.buf[:0]
	r.pending = nil
}

// Buffered returns the number of bytes waiting for a terminator.
func (r *FrameReader) Buffered() int { return len(r.buf) + len(r.pending) }

// MaxLength returns the configured frame limit.
func (r *FrameReader) MaxLength() int { return r.max }

// scan processes data and returns how many bytes were consumed. It returns
// false when yield asked to stop.
func (r *FrameReader) scan(data []byte, yield func(FrameResult) bool) (int, bool) {
	pos := 0
	for pos < len(data) {
		end := bytes.IndexByte(data[pos:], r.terminator)
		if end < 0 {
			end = len(data)
		} else {
			end += pos
		}

		// data[pos:end] belongs to the current frame. The byte that takes the
		// buffer past max overflows it; accumulation restarts right after.
		for end-pos > r.max-len(r.buf) {
			pos += r.max - len(r.buf) + 1
			r.buf = r.buf[:0]
			if !yield(FrameResult{Kind: FrameOverflow}) {
				return pos, false
			}
		}

		if end == len(data) {
			r.buf = append(r.buf, data[pos:end]...)
			return len(data), true
		}

		frame := data[pos:end]
		if len(r.buf) > 0 {
			r.buf = append(r.buf, frame...)
			frame = r.buf
		}
		r.buf = r.buf[:0]
		pos = end + 1
		if !yield(FrameResult{Kind: FrameComplete, Frame: frame}) {
			return pos, false
		}
	}
	return pos, true
}

func (r *FrameReader) hold(rest, next []byte) {
	if len(rest)+len(next) == 0 {
		return
	}
	held := make([]byte, 0, len(rest)+len(next))
	held = append(held, rest...)
	r.pending = append(held, next...)
}
