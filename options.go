package csvgen

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidConfiguration is returned by Write when the sink or the options are missing or malformed.
// No output is produced when it is returned.
var ErrInvalidConfiguration = errors.New("csvgen: invalid configuration")

const (
	// RoundTripFormat renders date-times as ISO-8601 with seven fractional digits,
	// e.g. 1970-01-01T00:00:00.0000000Z or 1970-01-01T00:00:00.0000000+00:00.
	RoundTripFormat = "O"

	// DefaultFloatingNumberFormat renders floats and decimals with 11 fixed decimal digits.
	DefaultFloatingNumberFormat = "0.00000000000"
)

// Options controls how a single Write call formats and escapes its output.
type Options struct {
	// ValueSeparator separates cells of a row. Default is ','.
	ValueSeparator rune
	// LineSeparator terminates each row. Default is "\n". May be empty.
	LineSeparator string
	// DateTimeFormat is RoundTripFormat or a Go time layout.
	DateTimeFormat string
	// FloatingNumberFormat is a numeric pattern such as "0.00" or "#.##", or "F<n>".
	FloatingNumberFormat string
	// ForceQuoteValues wraps every value (not header names) in double quotes.
	ForceQuoteValues bool
	// AddTrailingLineEnding writes LineSeparator after every row. When false no
	// separator is written at all and rows run together.
	AddTrailingLineEnding bool
}

// Option adjusts an Options value built by NewOptions.
type Option func(*Options)

// DefaultOptions returns a fresh Options value holding the defaults.
func DefaultOptions() *Options {
	return &Options{
		ValueSeparator:        ',',
		LineSeparator:         "\n",
		DateTimeFormat:        RoundTripFormat,
		FloatingNumberFormat:  DefaultFloatingNumberFormat,
		ForceQuoteValues:      false,
		AddTrailingLineEnding: true,
	}
}

// NewOptions returns the defaults with opts applied in order.
func NewOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// With returns a copy of o with opts applied. o itself is not modified.
func (o *Options) With(opts ...Option) *Options {
	c := *o
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// WithValueSeparator sets the rune written between cells.
func WithValueSeparator(sep rune) Option {
	return func(o *Options) {
		o.ValueSeparator = sep
	}
}

// WithLineSeparator sets the row terminator. An empty string writes none.
func WithLineSeparator(sep string) Option {
	return func(o *Options) {
		o.LineSeparator = sep
	}
}

// WithDateTimeFormat sets RoundTripFormat or a Go time layout for date-times.
func WithDateTimeFormat(layout string) Option {
	return func(o *Options) {
		o.DateTimeFormat = layout
	}
}

// WithFloatingNumberFormat sets the numeric pattern for floats and decimals.
func WithFloatingNumberFormat(pattern string) Option {
	return func(o *Options) {
		o.FloatingNumberFormat = pattern
	}
}

// WithForceQuoteValues quotes every present value when force is true.
func WithForceQuoteValues(force bool) Option {
	return func(o *Options) {
		o.ForceQuoteValues = force
	}
}

// WithTrailingLineEnding controls whether LineSeparator follows each row.
func WithTrailingLineEnding(add bool) Option {
	return func(o *Options) {
		o.AddTrailingLineEnding = add
	}
}

// Validate reports whether o can drive a Write call. Errors wrap ErrInvalidConfiguration.
func (o *Options) Validate() error {
	if o == nil {
		return fmt.Errorf("%w: options are nil", ErrInvalidConfiguration)
	}
	if o.ValueSeparator == 0 {
		return fmt.Errorf("%w: value separator is not set", ErrInvalidConfiguration)
	}
	if !utf8.ValidRune(o.ValueSeparator) {
		return fmt.Errorf("%w: value separator %U is not a valid rune", ErrInvalidConfiguration, o.ValueSeparator)
	}
	if o.DateTimeFormat == "" {
		return fmt.Errorf("%w: date-time format is empty", ErrInvalidConfiguration)
	}
	if _, err := parseNumberFormat(o.FloatingNumberFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}
