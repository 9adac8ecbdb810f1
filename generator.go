package csvgen

import (
	"fmt"
	"io"
	"iter"
	"reflect"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// RecordWriter writes a sequence of records of type T as CSV.
type RecordWriter[T any] interface {
	Write(records iter.Seq[T], sink io.Writer, opts *Options) error
}

// WriteStats describes one completed Write call.
type WriteStats struct {
	Record   string
	Rows     int   // data rows, header excluded
	Bytes    int64 // bytes the sink accepted
	Duration time.Duration
	Err      error
}

// Observer receives a WriteStats after every Write call that produced output.
type Observer interface {
	ObserveWrite(stats WriteStats)
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorConfig)

type generatorConfig struct {
	logger   zerolog.Logger
	observer Observer
}

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(logger zerolog.Logger) GeneratorOption {
	return func(c *generatorConfig) {
		c.logger = logger
	}
}

// WithObserver registers an observer notified after each Write.
func WithObserver(o Observer) GeneratorOption {
	return func(c *generatorConfig) {
		c.observer = o
	}
}

// Generator writes records of type T as CSV. The field list is computed once in
// New or NewWithFields and is read-only afterwards, so a Generator may serve
// concurrent Write calls as long as each call uses its own sink.
type Generator[T any] struct {
	fields   []Field[T]
	names    []string
	record   string
	logger   zerolog.Logger
	observer Observer
}

var _ RecordWriter[struct{}] = (*Generator[struct{}])(nil)

// New builds a Generator whose fields are selected with SelectFields.
func New[T any](opts ...GeneratorOption) *Generator[T] {
	fields, skipped := selectFields[T]()
	g := newGenerator(fields, opts)
	if len(skipped) > 0 {
		g.logger.Debug().Str("record", g.record).Strs("skipped", skipped).Msg("fields left out of csv output")
	}
	return g
}

// NewWithFields builds a Generator from an explicit field list. Ineligible
// fields are dropped; the remaining order is kept.
func NewWithFields[T any](fields []Field[T], opts ...GeneratorOption) *Generator[T] {
	selected, skipped := eligibleFields(fields)
	g := newGenerator(selected, opts)
	if len(skipped) > 0 {
		g.logger.Debug().Str("record", g.record).Strs("skipped", skipped).Msg("fields left out of csv output")
	}
	return g
}

func newGenerator[T any](fields []Field[T], opts []GeneratorOption) *Generator[T] {
	cfg := generatorConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}

	g := &Generator[T]{
		fields:   fields,
		names:    names,
		record:   reflect.TypeFor[T]().String(),
		logger:   cfg.logger,
		observer: cfg.observer,
	}
	g.logger.Debug().Str("record", g.record).Strs("fields", names).Msg("csv fields selected")
	return g
}

// Fields returns a copy of the selected fields in column order.
func (g *Generator[T]) Fields() []Field[T] {
	return slices.Clone(g.fields)
}

// Header returns a copy of the header cells in column order.
func (g *Generator[T]) Header() []string {
	return slices.Clone(g.names)
}

// Write emits the header row and one row per record to sink.
//
// A nil sink, nil options or options rejected by Validate fail with
// ErrInvalidConfiguration before anything is written. If T has no eligible
// fields nothing is written at all. Sink errors are returned unchanged; rows
// already written are not rolled back. The sink is never flushed or closed.
func (g *Generator[T]) Write(records iter.Seq[T], sink io.Writer, opts *Options) (err error) {
	if sink == nil {
		return fmt.Errorf("%w: sink is nil", ErrInvalidConfiguration)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if len(g.fields) == 0 {
		return nil
	}

	o := *opts
	r, err := newRenderer(&o)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	w := newRowWriter(sink, &o)

	start := time.Now()
	rows := 0
	defer func() {
		g.finish(WriteStats{
			Record:   g.record,
			Rows:     rows,
			Bytes:    w.written(),
			Duration: time.Since(start),
			Err:      err,
		})
	}()

	if err := w.writeHeader(g.names); err != nil {
		return err
	}
	if records != nil {
		for rec := range records {
			w.beginRow()
			for i, f := range g.fields {
				w.appendCell(r, f.Value(rec), i == 0)
			}
			if err := w.flushRow(); err != nil {
				return err
			}
			rows++
		}
	}
	return w.flush()
}

// WriteSlice is Write over the elements of records.
func (g *Generator[T]) WriteSlice(records []T, sink io.Writer, opts *Options) error {
	return g.Write(slices.Values(records), sink, opts)
}

func (g *Generator[T]) finish(stats WriteStats) {
	if stats.Err != nil {
		g.logger.Debug().Err(stats.Err).Str("record", stats.Record).Int("rows", stats.Rows).Msg("csv write failed")
	} else {
		g.logger.Debug().
			Str("record", stats.Record).
			Int("rows", stats.Rows).
			Int64("bytes", stats.Bytes).
			Dur("elapsed", stats.Duration).
			Msg("csv written")
	}
	if g.observer != nil {
		g.observer.ObserveWrite(stats)
	}
}
