package sst

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/sheetkit/internal/buf"
	"github.com/joshuapare/sheetkit/internal/format"
	"github.com/joshuapare/sheetkit/pkg/types"
)

// errPageFull stops a scan once the requested page is complete.
var errPageFull = errors.New("sst: page full")

// Reader resolves shared string indices against a sharedStrings fragment,
// keeping one page of entries decoded. It is not safe for concurrent use.
type Reader struct {
	open func() (io.ReadCloser, error)
	opts Options

	rc   io.ReadCloser
	win  *buf.Window
	next int  // index of the entry the live scan produces next
	done bool // live scan reached the end of the fragment

	offset int
	page   []string
	unique int
	count  int

	scratch []byte
}

// NewReader creates a reader over the fragment returned by open. open is
// called again whenever the reader must scan from the start.
func NewReader(open func() (io.ReadCloser, error), opts *Options) *Reader {
	o := opts.withDefaults()
	return &Reader{
		open:   open,
		opts:   o,
		page:   make([]string, 0, o.PageSize),
		unique: -1,
		count:  -1,
	}
}

// UniqueCount returns the declared number of distinct entries, or -1 before
// the first scan or when the fragment does not declare it.
func (r *Reader) UniqueCount() int { return r.unique }

// Count returns the declared total reference count, or -1.
func (r *Reader) Count() int { return r.count }

// Get returns the entry at index.
func (r *Reader) Get(index int) (string, error) {
	if index < 0 {
		return "", types.Boundsf("shared string index %d is negative", index)
	}
	if index >= r.offset && index < r.offset+len(r.page) {
		return r.page[index-r.offset], nil
	}
	if r.unique >= 0 && index >= r.unique {
		return "", types.Boundsf("shared string %d out of range [0,%d)", index, r.unique)
	}
	if err := r.load(index); err != nil {
		return "", err
	}
	if i := index - r.offset; i >= 0 && i < len(r.page) {
		return r.page[i], nil
	}
	return "", types.Boundsf("shared string %d not found; table holds %d entries", index, r.next)
}

// load replaces the page with the one containing index.
func (r *Reader) load(index int) error {
	start := (index / r.opts.PageSize) * r.opts.PageSize
	reopen := r.rc == nil || start < r.next
	r.opts.Logger.Debug("sst page load", "index", index, "offset", start, "reopen", reopen)
	if reopen {
		if err := r.reopen(); err != nil {
			return err
		}
	}

	r.offset = start
	r.page = r.page[:0]
	end := start + r.opts.PageSize
	err := r.scan(func(i int, text []byte) error {
		if i < start {
			return nil
		}
		r.page = append(r.page, string(text))
		if i+1 >= end {
			return errPageFull
		}
		return nil
	}, start)
	if err != nil && !errors.Is(err, errPageFull) {
		return err
	}
	return nil
}

func (r *Reader) reopen() error {
	if r.rc != nil {
		_ = r.rc.Close()
		r.rc = nil
	}
	rc, err := r.open()
	if err != nil {
		return fmt.Errorf("sst: open: %w", err)
	}
	r.rc = rc
	src := format.NewDecoder(rc)
	if r.win == nil {
		r.win = buf.NewWindow(src, r.opts.BufferSize, r.opts.MaxBufferSize)
	} else {
		r.win.Reset(src)
	}
	r.next = 0
	r.done = false
	return r.readHeader()
}

// readHeader consumes the <sst ...> start tag and records its counts.
func (r *Reader) readHeader() error {
	for {
		b := r.win.Bytes()
		if i := format.IndexOpenTag(b, 0, format.SSTOpen); i >= 0 {
			if gt := bytes.IndexByte(b[i:], '>'); gt >= 0 {
				tag := b[i+len(format.SSTOpen) : i+gt]
				if v, ok := format.FindAttr(tag, format.AttrUniqueCount); ok {
					if n, ok := format.ParseUint(v); ok {
						r.unique = n
					}
				}
				if v, ok := format.FindAttr(tag, format.AttrCount); ok {
					if n, ok := format.ParseUint(v); ok {
						r.count = n
					}
				}
				if b[i+gt-1] == '/' {
					r.done = true
				}
				r.win.Advance(i + gt + 1)
				return nil
			}
		}
		more, err := r.win.Fill()
		if err != nil {
			return types.Structuref("sst: header: %v", err)
		}
		if !more {
			return types.Structuref("sst: <sst> element not found")
		}
	}
}

// scan feeds entries from the live position to fn until fn returns an error
// or the fragment ends. Entries before skipTo are stepped over without
// decoding.
func (r *Reader) scan(fn func(i int, text []byte) error, skipTo int) error {
	for !r.done {
		text, ok, err := r.nextItem(r.next >= skipTo)
		if err != nil {
			return err
		}
		if !ok {
			r.done = true
			if r.unique < 0 || r.unique > r.next {
				r.unique = r.next
			}
			return nil
		}
		i := r.next
		r.next++
		if err := fn(i, text); err != nil {
			return err
		}
	}
	return nil
}

// nextItem returns the next <si> entry. ok is false at the end of the
// fragment. When decode is false the entry is skipped and text is nil.
func (r *Reader) nextItem(decode bool) ([]byte, bool, error) {
	for {
		b := r.win.Bytes()
		i := format.IndexOpenTag(b, 0, format.SIOpen)
		if i >= 0 {
			if gt := bytes.IndexByte(b[i:], '>'); gt >= 0 {
				gt += i
				if b[gt-1] == '/' {
					r.win.Advance(gt + 1)
					return r.scratch[:0], true, nil
				}
				if end := bytes.Index(b[gt+1:], format.SIClose); end >= 0 {
					end += gt + 1
					var text []byte
					if decode {
						text = r.decodeItem(b[gt+1 : end])
					}
					r.win.Advance(end + len(format.SIClose))
					return text, true, nil
				}
			}
			r.win.Advance(i)
		} else {
			if bytes.Contains(b, sstClose) {
				return nil, false, nil
			}
			if keep := len(format.SIOpen); len(b) > keep {
				r.win.Advance(len(b) - keep)
			}
		}

		more, err := r.win.Fill()
		if errors.Is(err, buf.ErrWindowFull) {
			return nil, false, &types.Error{Kind: types.ErrKindStructure, Msg: fmt.Sprintf("sst: entry %d exceeds buffer limit", r.next), Err: err}
		}
		if err != nil {
			return nil, false, fmt.Errorf("sst: read: %w", err)
		}
		if !more {
			if i >= 0 {
				return nil, false, &types.Error{Kind: types.ErrKindStructure, Msg: fmt.Sprintf("sst: entry %d not closed", r.next), Err: format.ErrUnclosed}
			}
			return nil, false, nil
		}
	}
}

var sstClose = []byte("</sst>")

// decodeItem concatenates the <t> runs of an <si> body, skipping phonetic
// runs, into the reader's scratch buffer.
func (r *Reader) decodeItem(body []byte) []byte {
	out := r.scratch[:0]
	pos := 0
	for pos < len(body) {
		t := format.IndexOpenTag(body, pos, format.TextOpen)
		if t < 0 {
			break
		}
		if ph := format.IndexOpenTag(body, pos, format.PhoneticOpen); ph >= 0 && ph < t {
			end := bytes.Index(body[ph:], format.PhoneticClose)
			if end < 0 {
				break
			}
			pos = ph + end + len(format.PhoneticClose)
			continue
		}
		gt := bytes.IndexByte(body[t:], '>')
		if gt < 0 {
			break
		}
		gt += t
		if body[gt-1] == '/' {
			pos = gt + 1
			continue
		}
		end := bytes.Index(body[gt+1:], format.TextClose)
		if end < 0 {
			break
		}
		end += gt + 1
		out = format.AppendUnescaped(out, body[gt+1:end])
		pos = end + len(format.TextClose)
	}
	r.scratch = out
	return out
}

// Close releases the underlying part.
func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	err := r.rc.Close()
	r.rc = nil
	return err
}
