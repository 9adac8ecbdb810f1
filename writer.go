package csvgen

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

const defaultBufferSize = 4 << 10 // 4096 bytes

var errWriterNoTarget = errors.New("csvgen: writer destination cannot be nil")

// rowWriter emits complete rows into a buffered sink. It keeps the first sink
// error and returns it from every later call; nothing already handed to the
// sink is rolled back.
type rowWriter struct {
	dst  *bufio.Writer
	sink *countingSink

	sep      []byte
	sepRune  rune
	eol      string
	trailing bool
	force    bool

	row  []byte
	cell []byte

	err error
}

func newRowWriter(sink io.Writer, o *Options) *rowWriter {
	if sink == nil {
		panic(errWriterNoTarget.Error())
	}
	counted := &countingSink{w: sink}
	return &rowWriter{
		dst:      bufio.NewWriterSize(counted, defaultBufferSize),
		sink:     counted,
		sep:      utf8.AppendRune(nil, o.ValueSeparator),
		sepRune:  o.ValueSeparator,
		eol:      o.LineSeparator,
		trailing: o.AddTrailingLineEnding,
		force:    o.ForceQuoteValues,
		row:      make([]byte, 0, 256),
		cell:     make([]byte, 0, 64),
	}
}

// writeHeader writes the field names as they are, without escaping.
func (w *rowWriter) writeHeader(names []string) error {
	w.row = w.row[:0]
	for i, name := range names {
		if i > 0 {
			w.row = append(w.row, w.sep...)
		}
		w.row = append(w.row, name...)
	}
	return w.flushRow()
}

// appendCell renders and escapes v as the next cell of the current row.
// Absent values contribute nothing, not even forced quotes.
func (w *rowWriter) appendCell(r *renderer, v Value, first bool) {
	if !first {
		w.row = append(w.row, w.sep...)
	}
	if v.IsNull() {
		return
	}
	w.cell = r.appendValue(w.cell[:0], v)
	w.row = appendEscaped(w.row, w.cell, w.sepRune, w.force)
}

func (w *rowWriter) beginRow() {
	w.row = w.row[:0]
}

// flushRow hands the current row and its terminator to the buffered sink.
func (w *rowWriter) flushRow() error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.dst.Write(w.row); err != nil {
		w.err = err
		return err
	}
	if w.trailing && w.eol != "" {
		if _, err := w.dst.WriteString(w.eol); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// flush pushes buffered bytes into the sink. The sink itself is not flushed or closed.
func (w *rowWriter) flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// written returns the number of bytes the sink has accepted so far.
// Bytes still held in the buffer are not counted.
func (w *rowWriter) written() int64 {
	return w.sink.n
}

type countingSink struct {
	w io.Writer
	n int64
}

func (c *countingSink) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
