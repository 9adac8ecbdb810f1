package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/csvgen"
)

type point struct {
	X int
	Y int
}

type failingSink struct{ err error }

func (f failingSink) Write([]byte) (int, error) { return 0, f.err }

func TestCollectorObserveWrite(t *testing.T) {
	c := NewCollector(Config{}, nil)

	c.ObserveWrite(csvgen.WriteStats{Record: "p", Rows: 3, Bytes: 42, Duration: time.Millisecond})
	c.ObserveWrite(csvgen.WriteStats{Record: "p", Rows: 1, Bytes: 8, Err: errors.New("boom")})

	assert.Equal(t, 4.0, testutil.ToFloat64(c.rows.WithLabelValues("p")))
	assert.Equal(t, 50.0, testutil.ToFloat64(c.bytes.WithLabelValues("p")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("p")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestCollectorWithGenerator(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(Config{Namespace: "test"}, registry)
	require.Same(t, registry, c.Registry())

	gen := csvgen.New[point](csvgen.WithObserver(c))
	var buf bytes.Buffer
	records := []point{{1, 2}, {3, 4}}

	require.NoError(t, gen.WriteSlice(records, &buf, csvgen.DefaultOptions()))
	require.Equal(t, "X,Y\n1,2\n3,4\n", buf.String())

	record := "metrics.point"
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rows.WithLabelValues(record)))
	assert.Equal(t, float64(buf.Len()), testutil.ToFloat64(c.bytes.WithLabelValues(record)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.errors.WithLabelValues(record)))

	sinkErr := errors.New("disk full")
	err := gen.WriteSlice(records, failingSink{err: sinkErr}, csvgen.DefaultOptions())
	require.ErrorIs(t, err, sinkErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues(record)))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_rows_written_total")
	assert.Contains(t, names, "test_write_duration_seconds")
}
