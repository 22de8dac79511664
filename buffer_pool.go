package cat

import (
	"sync"

	"go.uber.org/atomic"
)

// ReadBufferSize is the size of the buffers handed to transport reads. It is
// twice the default frame limit so one read can carry several frames.
const ReadBufferSize = 2 * DefaultMaxFrameLength

// BufferPool manages reusable fixed size byte buffers for read loops.
type BufferPool struct {
	pool sync.Pool
	size int
	// Metrics for monitoring pool efficiency
	gets    atomic.Int64
	puts    atomic.Int64
	creates atomic.Int64
}

// NewBufferPool creates a buffer pool with fixed size buffers.
func NewBufferPool(bufferSize int) *BufferPool {
	bp := &BufferPool{
		size: bufferSize,
	}
	bp.pool = sync.Pool{
		New: func() any {
			bp.creates.Inc()
			b := make([]byte, bufferSize)
			return &b
		},
	}
	return bp
}

// Get retrieves a buffer from the pool.
func (bp *BufferPool) Get() []byte {
	bp.gets.Inc()
	return *bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool. Incorrectly sized buffers are dropped.
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.size {
		return
	}
	buf = buf[:bp.size]
	bp.puts.Inc()

	clear(buf)
	bp.pool.Put(&buf)
}

// Stats returns pool usage statistics.
func (bp *BufferPool) Stats() PoolStats {
	return PoolStats{
		Size:    bp.size,
		Gets:    bp.gets.Load(),
		Puts:    bp.puts.Load(),
		Creates: bp.creates.Load(),
	}
}

// ResetStats zeroes the usage counters.
func (bp *BufferPool) ResetStats() {
	bp.gets.Store(0)
	bp.puts.Store(0)
	bp.creates.Store(0)
}

// PoolStats contains buffer pool usage statistics.
type PoolStats struct {
	Size    int   // Buffer size managed by this pool
	Gets    int64 // Number of Get() calls
	Puts    int64 // Number of Put() calls
	Creates int64 // Number of new buffers created
}

// HitRatio returns the share of Get calls served without allocating, from
// 0.0 to 1.0.
func (ps PoolStats) HitRatio() float64 {
	if ps.Gets == 0 {
		return 0.0
	}
	return 1.0 - (float64(ps.Creates) / float64(ps.Gets))
}

var readPool = NewBufferPool(ReadBufferSize)

func getReadBuf() []byte { return readPool.Get() }

func putReadBuf(b []byte) { readPool.Put(b) }

// ReadPoolStats reports usage of the pool shared by Channel.ReadFrom and the
// Port reader loop.
func ReadPoolStats() PoolStats { return readPool.Stats() }
