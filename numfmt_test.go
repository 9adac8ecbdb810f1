package csvgen

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    numberFormat
		wantErr bool
	}{
		{pattern: DefaultFloatingNumberFormat, want: numberFormat{minInt: 1, minFrac: 11, maxFrac: 11}},
		{pattern: "0.0", want: numberFormat{minInt: 1, minFrac: 1, maxFrac: 1}},
		{pattern: "0", want: numberFormat{minInt: 1}},
		{pattern: "#.##", want: numberFormat{minFrac: 0, maxFrac: 2}},
		{pattern: "000.0#", want: numberFormat{minInt: 3, minFrac: 1, maxFrac: 2}},
		{pattern: "F", want: numberFormat{minInt: 1, minFrac: 2, maxFrac: 2}},
		{pattern: "f4", want: numberFormat{minInt: 1, minFrac: 4, maxFrac: 4}},
		{pattern: "", wantErr: true},
		{pattern: "0.0e", wantErr: true},
		{pattern: "#,##0", wantErr: true},
		{pattern: "Fx", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			got, err := parseNumberFormat(tc.pattern)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNumberFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		value   float64
		bitSize int
		want    string
	}{
		{name: "default", pattern: DefaultFloatingNumberFormat, value: 42.42, bitSize: 64, want: "42.42000000000"},
		{name: "float32Default", pattern: DefaultFloatingNumberFormat, value: float64(float32(42.42)), bitSize: 32, want: "42.42000000000"},
		{name: "oneDigit", pattern: "0.0", value: float64(float32(42.42)), bitSize: 32, want: "42.4"},
		{name: "halfAwayFromZero", pattern: "0.0", value: 0.25, bitSize: 64, want: "0.3"},
		{name: "negativeHalf", pattern: "0.0", value: -0.25, bitSize: 64, want: "-0.3"},
		{name: "integerPattern", pattern: "0", value: 2.5, bitSize: 64, want: "3"},
		{name: "optionalDigits", pattern: "#.##", value: 0.5, bitSize: 64, want: ".5"},
		{name: "optionalDigitsWhole", pattern: "0.##", value: 3, bitSize: 64, want: "3"},
		{name: "paddedInteger", pattern: "000.0", value: 7.04, bitSize: 64, want: "007.0"},
		{name: "negativeZero", pattern: "0.0", value: -0.01, bitSize: 64, want: "0.0"},
		{name: "zeroWithOptional", pattern: "#", value: 0, bitSize: 64, want: "0"},
		{name: "large", pattern: "F2", value: 1e21, bitSize: 64, want: "1000000000000000000000.00"},
		{name: "nan", pattern: "0.0", value: math.NaN(), bitSize: 64, want: "NaN"},
		{name: "posInf", pattern: "0.0", value: math.Inf(1), bitSize: 64, want: "+Inf"},
		{name: "negInf", pattern: "0.0", value: math.Inf(-1), bitSize: 64, want: "-Inf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			nf, err := parseNumberFormat(tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(nf.appendFloat(nil, tc.value, tc.bitSize)))
		})
	}
}

func TestNumberFormatDecimal(t *testing.T) {
	t.Parallel()

	nf, err := parseNumberFormat(DefaultFloatingNumberFormat)
	require.NoError(t, err)

	r, ok := new(big.Rat).SetString("42.42")
	require.True(t, ok)
	assert.Equal(t, "42.42000000000", string(nf.appendRat(nil, r)))

	third := big.NewRat(1, 3)
	assert.Equal(t, "0.33333333333", string(nf.appendRat(nil, third)))

	nf, err = parseNumberFormat("0.00")
	require.NoError(t, err)
	assert.Equal(t, "-2.68", string(nf.appendRat(nil, big.NewRat(-2675, 1000))))
}
