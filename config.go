package csvgen

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// fileOptions is the YAML form of Options. Missing keys keep their defaults.
type fileOptions struct {
	ValueSeparator        *string `yaml:"value_separator"`
	LineSeparator         *string `yaml:"line_separator"`
	DateTimeFormat        *string `yaml:"date_time_format"`
	FloatingNumberFormat  *string `yaml:"floating_number_format"`
	ForceQuoteValues      *bool   `yaml:"force_quote_values"`
	AddTrailingLineEnding *bool   `yaml:"add_trailing_line_ending"`
}

// LoadOptions reads Options from a YAML file, applies defaults for missing keys
// and validates the result.
//
// Example:
//
//	value_separator: ";"
//	line_separator: "\r\n"
//	floating_number_format: "0.00"
//	force_quote_values: true
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %q: %w", path, err)
	}

	opts, err := ParseOptions(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load options file %q: %w", path, err)
	}
	return opts, nil
}

// ParseOptions decodes YAML options. See LoadOptions.
func ParseOptions(data []byte) (*Options, error) {
	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	opts := DefaultOptions()
	if fo.ValueSeparator != nil {
		sep, size := utf8.DecodeRuneInString(*fo.ValueSeparator)
		if sep == utf8.RuneError || size != len(*fo.ValueSeparator) {
			return nil, fmt.Errorf("%w: value_separator must be a single character, got %q",
				ErrInvalidConfiguration, *fo.ValueSeparator)
		}
		opts.ValueSeparator = sep
	}
	if fo.LineSeparator != nil {
		opts.LineSeparator = *fo.LineSeparator
	}
	if fo.DateTimeFormat != nil {
		opts.DateTimeFormat = *fo.DateTimeFormat
	}
	if fo.FloatingNumberFormat != nil {
		opts.FloatingNumberFormat = *fo.FloatingNumberFormat
	}
	if fo.ForceQuoteValues != nil {
		opts.ForceQuoteValues = *fo.ForceQuoteValues
	}
	if fo.AddTrailingLineEnding != nil {
		opts.AddTrailingLineEnding = *fo.AddTrailingLineEnding
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
