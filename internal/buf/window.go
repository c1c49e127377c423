package buf

import (
	"bytes"
	"errors"
	"io"
)

// ErrWindowFull is returned by Fill when the window is already at its maximum
// size and the caller still has not found what it is scanning for.
var ErrWindowFull = errors.New("buf: window at maximum size")

// maxEmptyReads bounds consecutive (0, nil) reads before Fill gives up.
const maxEmptyReads = 100

// Window is a refillable view over a byte stream. Callers scan Bytes(),
// consume with Advance, and call Fill when a marker is not in the buffered
// span. Fill shifts the unread tail to the front of the buffer and reads
// more, growing the buffer (up to max) only when it is completely full.
//
// Slices returned by Bytes alias the internal buffer and are valid until the
// next Fill.
type Window struct {
	r     io.Reader
	buf   []byte
	start int // first unread byte
	end   int // exclusive upper bound of buffered bytes
	max   int
	eof   bool
	grows int
	total int64 // bytes consumed through Advance
}

// NewWindow creates a window with an initial buffer of size bytes that may
// grow up to max bytes.
func NewWindow(r io.Reader, size, max int) *Window {
	if size <= 0 {
		size = 64 << 10
	}
	if max < size {
		max = size
	}
	return &Window{r: r, buf: make([]byte, size), max: max}
}

// Reset points the window at a new reader, keeping the allocated buffer.
func (w *Window) Reset(r io.Reader) {
	w.r = r
	w.start, w.end = 0, 0
	w.eof = false
	w.total = 0
}

// Bytes returns the buffered, unread span.
func (w *Window) Bytes() []byte { return w.buf[w.start:w.end] }

// Len returns the number of buffered, unread bytes.
func (w *Window) Len() int { return w.end - w.start }

// Advance consumes n bytes from the front of the unread span.
func (w *Window) Advance(n int) {
	if n < 0 || n > w.end-w.start {
		n = w.end - w.start
	}
	w.start += n
	w.total += int64(n)
}

// Offset returns the stream offset of the first unread byte.
func (w *Window) Offset() int64 { return w.total }

// EOF reports whether the underlying reader is exhausted. Buffered bytes may
// still remain.
func (w *Window) EOF() bool { return w.eof }

// Cap returns the current buffer size.
func (w *Window) Cap() int { return len(w.buf) }

// Grows returns how many times the buffer was enlarged.
func (w *Window) Grows() int { return w.grows }

// Index returns the index of sep in the unread span at or after from, or -1.
func (w *Window) Index(sep []byte, from int) int {
	b := w.Bytes()
	if from < 0 || from > len(b) {
		return -1
	}
	i := bytes.Index(b[from:], sep)
	if i < 0 {
		return -1
	}
	return from + i
}

// Fill compacts the window and reads more bytes. It returns false with a nil
// error when the reader is exhausted and nothing new was read.
func (w *Window) Fill() (bool, error) {
	if w.eof {
		return false, nil
	}
	if w.start > 0 {
		n := copy(w.buf, w.buf[w.start:w.end])
		w.start, w.end = 0, n
	}
	if w.end == len(w.buf) {
		if len(w.buf) >= w.max {
			return false, ErrWindowFull
		}
		size, ok := MulOverflowSafe(len(w.buf), 2)
		if !ok || size > w.max {
			size = w.max
		}
		grown := make([]byte, size)
		copy(grown, w.buf[:w.end])
		w.buf = grown
		w.grows++
	}

	before := w.end
	empty := 0
	for w.end < len(w.buf) {
		n, err := w.r.Read(w.buf[w.end:])
		w.end += n
		if err == io.EOF {
			w.eof = true
			break
		}
		if err != nil {
			return w.end > before, err
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return w.end > before, io.ErrNoProgress
			}
		}
	}
	return w.end > before, nil
}
