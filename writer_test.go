package csvgen

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowWriterRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []string
		rows   [][]Value
		config func(*Options)
		want   string
	}{
		{
			name:   "basic",
			header: []string{"a", "b", "c"},
			rows:   [][]Value{{IntValue(1), StringValue("x"), BoolValue(true)}},
			want:   "a,b,c\n1,x,True\n",
		},
		{
			name:   "multipleRecords",
			header: []string{"alpha", "beta"},
			rows: [][]Value{
				{StringValue("gamma"), StringValue("delta")},
				{StringValue("eps"), StringValue("zeta")},
			},
			want: "alpha,beta\ngamma,delta\neps,zeta\n",
		},
		{
			name:   "emptyField",
			header: []string{"a", "b"},
			rows:   [][]Value{{Null(), StringValue("b")}},
			want:   "a,b\n,b\n",
		},
		{
			name:   "commaForcesQuote",
			header: []string{"a"},
			rows:   [][]Value{{StringValue("alpha,beta")}},
			want:   "a\n\"alpha,beta\"\n",
		},
		{
			name:   "quoteIsNotDoubled",
			header: []string{"a", "b"},
			rows:   [][]Value{{StringValue(`he said "hello"`), StringValue("plain")}},
			want:   "a,b\n\"he said \"hello\"\",plain\n",
		},
		{
			name:   "newlineDoesNotForceQuote",
			header: []string{"a", "b"},
			rows:   [][]Value{{StringValue("multi\nline"), StringValue("z")}},
			want:   "a,b\nmulti\nline,z\n",
		},
		{
			name:   "alwaysQuote",
			header: []string{"a", "b"},
			rows:   [][]Value{{StringValue("alpha"), Null()}},
			config: func(o *Options) {
				o.ForceQuoteValues = true
			},
			want: "a,b\n\"alpha\",\n",
		},
		{
			name:   "customSeparator",
			header: []string{"a", "b"},
			rows:   [][]Value{{StringValue("a;b"), StringValue("a,b")}},
			config: func(o *Options) {
				o.ValueSeparator = ';'
			},
			want: "a;b\n\"a;b\";a,b\n",
		},
		{
			name:   "multibyteSeparator",
			header: []string{"a", "b"},
			rows:   [][]Value{{StringValue("x¦y"), IntValue(2)}},
			config: func(o *Options) {
				o.ValueSeparator = '¦'
			},
			want: "a¦b\n\"x¦y\"¦2\n",
		},
		{
			name:   "crlf",
			header: []string{"a"},
			rows:   [][]Value{{IntValue(1)}, {IntValue(2)}},
			config: func(o *Options) {
				o.LineSeparator = "\r\n"
			},
			want: "a\r\n1\r\n2\r\n",
		},
		{
			name:   "noTrailingLineEnding",
			header: []string{"a"},
			rows:   [][]Value{{IntValue(1)}, {IntValue(2)}},
			config: func(o *Options) {
				o.AddTrailingLineEnding = false
			},
			want: "a12",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			if tc.config != nil {
				tc.config(opts)
			}
			r, err := newRenderer(opts)
			require.NoError(t, err)

			var buf bytes.Buffer
			w := newRowWriter(&buf, opts)
			require.NoError(t, w.writeHeader(tc.header))
			for _, row := range tc.rows {
				w.beginRow()
				for i, v := range row {
					w.appendCell(r, v, i == 0)
				}
				require.NoError(t, w.flushRow())
			}
			require.NoError(t, w.flush())

			assert.Equal(t, tc.want, buf.String())
			assert.Equal(t, int64(buf.Len()), w.written())
		})
	}
}

func TestRowWriterPanicsOnNilSink(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, errWriterNoTarget.Error(), func() {
		newRowWriter(nil, DefaultOptions())
	})
}

type flushFailWriter struct {
	fail error
}

func (f *flushFailWriter) Write([]byte) (int, error) {
	return 0, f.fail
}

func TestRowWriterStickyError(t *testing.T) {
	t.Parallel()

	exp := errors.New("flush failed")
	w := newRowWriter(&flushFailWriter{fail: exp}, DefaultOptions())

	require.NoError(t, w.writeHeader([]string{"a"}), "header fits in the buffer")
	require.ErrorIs(t, w.flush(), exp)

	w.beginRow()
	require.ErrorIs(t, w.flushRow(), exp, "later rows return the stored error")
	require.ErrorIs(t, w.flush(), exp)
}

func TestRowWriterLargeRowReachesSink(t *testing.T) {
	t.Parallel()

	exp := errors.New("write failed")
	w := newRowWriter(&flushFailWriter{fail: exp}, DefaultOptions())

	w.beginRow()
	w.row = append(w.row, bytes.Repeat([]byte{'x'}, defaultBufferSize*2)...)
	require.ErrorIs(t, w.flushRow(), exp)
}

type partialSink struct {
	accept int
	err    error
	got    []byte
}

func (p *partialSink) Write(b []byte) (int, error) {
	n := min(len(b), p.accept-len(p.got))
	p.got = append(p.got, b[:n]...)
	if n < len(b) {
		return n, p.err
	}
	return n, nil
}

func TestRowWriterCountsOnlyAcceptedBytes(t *testing.T) {
	t.Parallel()

	exp := errors.New("disk full")
	sink := &partialSink{accept: 3, err: exp}
	w := newRowWriter(sink, DefaultOptions())

	require.NoError(t, w.writeHeader([]string{"alpha", "beta"}))
	assert.Zero(t, w.written(), "buffered bytes have not reached the sink")

	require.ErrorIs(t, w.flush(), exp)
	assert.Equal(t, int64(3), w.written())
	assert.Equal(t, "alp", string(sink.got))
}
