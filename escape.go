package csvgen

import "unicode/utf8"

// appendEscaped appends the escaped form of cell to dst. Backslashes are doubled
// first; the result is then wrapped in double quotes when forced or when it
// contains the separator or a double quote. Embedded quotes are kept as is.
func appendEscaped(dst, cell []byte, sep rune, force bool) []byte {
	quote := force || needsQuote(cell, sep)
	if quote {
		dst = append(dst, '"')
	}
	start := 0
	for i := 0; i < len(cell); i++ {
		if cell[i] == '\\' {
			dst = append(dst, cell[start:i+1]...)
			dst = append(dst, '\\')
			start = i + 1
		}
	}
	dst = append(dst, cell[start:]...)
	if quote {
		dst = append(dst, '"')
	}
	return dst
}

// Escape returns text as it would appear in a cell written with opts.
func Escape(text string, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	return string(appendEscaped(nil, []byte(text), opts.ValueSeparator, opts.ForceQuoteValues))
}

func needsQuote(cell []byte, sep rune) bool {
	if sep < utf8.RuneSelf {
		for _, c := range cell {
			if c == '"' || rune(c) == sep {
				return true
			}
		}
		return false
	}
	for len(cell) > 0 {
		r, n := utf8.DecodeRune(cell)
		if r == '"' || r == sep {
			return true
		}
		cell = cell[n:]
	}
	return false
}
