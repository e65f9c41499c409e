// @focus: #terminal { output }
package terminal

const (
	maxSpans      = 128
	spanArenaSize = 8192

	// Auto-flush watermarks
	spanFlushCount = 64
	vecFlushBytes  = 4096

	fallbackBufSize = 8192

	envDisableWritev = "TERMGRID_DISABLE_WRITEV"
)

type outputStats struct {
	vectoredWrites uint64
	fallbackWrites uint64
	directWrites   uint64
	partialWrites  uint64
	retries        uint64
	bytesOut       uint64
}

// vecWriter batches output into iovec spans for writev. Stable byte
// slices (interned sequences, precomputed fragments) are referenced
// directly; volatile bytes are copied into a fixed arena so callers
// may reuse their buffers. On writev failure the writer degrades
// permanently to buffered single-fd writes.
type vecWriter struct {
	fd int

	spans    [][]byte
	arena    []byte
	arenaLen int
	total    int

	autoFlush bool
	vectored  bool

	buf []byte

	// Injectable for tests
	writevFn func(fd int, vecs [][]byte) (int, error)
	writeFn  func(fd int, b []byte) (int, error)

	stats outputStats
}

func newVecWriter(fd int, vectored bool) *vecWriter {
	w := &vecWriter{
		fd:        fd,
		spans:     make([][]byte, 0, maxSpans),
		arena:     make([]byte, spanArenaSize),
		buf:       make([]byte, 0, fallbackBufSize),
		autoFlush: true,
		vectored:  vectored,
		writevFn:  sysWritev,
		writeFn:   sysWrite,
	}
	return w
}

func (w *vecWriter) setAutoFlush(on bool) {
	w.autoFlush = on
}

// writeStable queues b without copying; b must not change until after
// the next flush
func (w *vecWriter) writeStable(b []byte) {
	if len(b) == 0 {
		return
	}
	if !w.vectored {
		w.writeBuffered(b)
		return
	}
	if len(w.spans) >= maxSpans {
		w.flush()
	}
	w.spans = append(w.spans, b)
	w.total += len(b)
	w.maybeFlush()
}

// writeBytes queues a copy of b taken from the arena
func (w *vecWriter) writeBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	if !w.vectored {
		w.writeBuffered(b)
		return
	}
	if len(b) > spanArenaSize {
		w.flush()
		w.writeDirect(b)
		return
	}
	if w.arenaLen+len(b) > spanArenaSize || len(w.spans) >= maxSpans {
		w.flush()
	}
	dst := w.arena[w.arenaLen : w.arenaLen+len(b)]
	copy(dst, b)
	w.arenaLen += len(b)
	w.spans = append(w.spans, dst)
	w.total += len(b)
	w.maybeFlush()
}

func (w *vecWriter) maybeFlush() {
	if w.autoFlush && (len(w.spans) >= spanFlushCount || w.total >= vecFlushBytes) {
		w.flush()
	}
}

// flush drains all queued output
func (w *vecWriter) flush() {
	if !w.vectored {
		w.flushBuffered()
		return
	}
	vecs := w.spans
	for len(vecs) > 0 {
		n, err := w.writevFn(w.fd, vecs)
		if err != nil {
			if isRetryableWriteErr(err) {
				w.stats.retries++
				continue
			}
			// Permanent degradation; remaining queued bytes are dropped
			// since the fd state after a hard writev error is unknown
			w.stats.fallbackWrites++
			w.vectored = false
			break
		}
		if n <= 0 {
			// Zero progress with no error; treat like a hard failure
			w.stats.fallbackWrites++
			w.vectored = false
			break
		}
		w.stats.vectoredWrites++
		w.stats.bytesOut += uint64(n)
		if n < spanBytes(vecs) {
			w.stats.partialWrites++
		}
		vecs = trimSpans(vecs, n)
	}
	w.spans = w.spans[:0]
	w.arenaLen = 0
	w.total = 0
}

func spanBytes(vecs [][]byte) int {
	n := 0
	for _, v := range vecs {
		n += len(v)
	}
	return n
}

// trimSpans drops fully written spans and reslices a partially written one
func trimSpans(vecs [][]byte, written int) [][]byte {
	for len(vecs) > 0 {
		if written < len(vecs[0]) {
			vecs[0] = vecs[0][written:]
			return vecs
		}
		written -= len(vecs[0])
		vecs = vecs[1:]
	}
	return vecs
}

// writeDirect bypasses batching for oversized payloads
func (w *vecWriter) writeDirect(b []byte) {
	w.stats.directWrites++
	for len(b) > 0 {
		n, err := w.writeFn(w.fd, b)
		if err != nil {
			if isRetryableWriteErr(err) {
				w.stats.retries++
				continue
			}
			return
		}
		if n <= 0 {
			return
		}
		w.stats.bytesOut += uint64(n)
		b = b[n:]
	}
}

func (w *vecWriter) writeBuffered(b []byte) {
	w.buf = append(w.buf, b...)
	if w.autoFlush && len(w.buf) >= fallbackBufSize*3/4 {
		w.flushBuffered()
	}
}

func (w *vecWriter) flushBuffered() {
	b := w.buf
	for len(b) > 0 {
		n, err := w.writeFn(w.fd, b)
		if err != nil {
			if isRetryableWriteErr(err) {
				w.stats.retries++
				continue
			}
			break
		}
		if n <= 0 {
			break
		}
		w.stats.bytesOut += uint64(n)
		b = b[n:]
	}
	w.buf = w.buf[:0]
}
