package csvgen

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var errEmptyNumberFormat = errors.New("floating number format is empty")

// numberFormat is a parsed fixed-point pattern.
type numberFormat struct {
	minInt  int // digits always printed before the point
	minFrac int // digits always printed after the point
	maxFrac int // rounding precision
}

// parseNumberFormat accepts "F<n>" (n fixed decimals, two when omitted) or a
// custom pattern of '0' (required digit) and '#' (optional digit) split by an
// optional '.', e.g. "0.00000000000" or "0.0#" (one or two decimals).
func parseNumberFormat(pattern string) (numberFormat, error) {
	if pattern == "" {
		return numberFormat{}, errEmptyNumberFormat
	}

	if pattern[0] == 'F' || pattern[0] == 'f' {
		n := 2
		if len(pattern) > 1 {
			v, err := strconv.Atoi(pattern[1:])
			if err != nil || v < 0 || v > 99 {
				return numberFormat{}, fmt.Errorf("invalid fixed-point format %q", pattern)
			}
			n = v
		}
		return numberFormat{minInt: 1, minFrac: n, maxFrac: n}, nil
	}

	intPart, fracPart, _ := strings.Cut(pattern, ".")
	var nf numberFormat
	for i := 0; i < len(intPart); i++ {
		switch intPart[i] {
		case '0':
			nf.minInt++
		case '#':
		default:
			return numberFormat{}, fmt.Errorf("unsupported character %q in number format %q", intPart[i], pattern)
		}
	}
	for i := 0; i < len(fracPart); i++ {
		switch fracPart[i] {
		case '0':
			nf.minFrac = i + 1
		case '#':
		default:
			return numberFormat{}, fmt.Errorf("unsupported character %q in number format %q", fracPart[i], pattern)
		}
	}
	nf.maxFrac = len(fracPart)
	return nf, nil
}

// appendFloat formats f from its shortest decimal representation at the given bit size,
// so a float32 42.42 rounds as 42.42 and not as 42.41999816894531.
func (nf numberFormat) appendFloat(dst []byte, f float64, bitSize int) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "+Inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-Inf"...)
	}
	var r big.Rat
	if _, ok := r.SetString(strconv.FormatFloat(f, 'g', -1, bitSize)); !ok {
		return strconv.AppendFloat(dst, f, 'f', nf.maxFrac, bitSize)
	}
	return nf.appendRat(dst, &r)
}

// appendRat rounds r half away from zero to maxFrac digits, then drops optional trailing zeros.
func (nf numberFormat) appendRat(dst []byte, r *big.Rat) []byte {
	s := r.FloatString(nf.maxFrac)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intDigits, frac, _ := strings.Cut(s, ".")
	for len(frac) > nf.minFrac && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	if intDigits == "0" && nf.minInt == 0 {
		intDigits = ""
	}
	if neg && strings.Trim(intDigits+frac, "0") == "" {
		neg = false
	}
	if intDigits == "" && frac == "" {
		intDigits = "0"
	}

	if neg {
		dst = append(dst, '-')
	}
	for i := len(intDigits); i < nf.minInt; i++ {
		dst = append(dst, '0')
	}
	dst = append(dst, intDigits...)
	if frac != "" {
		dst = append(dst, '.')
		dst = append(dst, frac...)
	}
	return dst
}
