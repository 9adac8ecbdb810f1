package csvgen

import (
	"strconv"
	"strings"
)

const (
	roundTripLayout       = "2006-01-02T15:04:05.0000000Z07:00"
	roundTripOffsetLayout = "2006-01-02T15:04:05.0000000-07:00"
)

// renderer formats values for one output session.
type renderer struct {
	num          numberFormat
	timeLayout   string
	offsetLayout string
}

func newRenderer(o *Options) (*renderer, error) {
	nf, err := parseNumberFormat(o.FloatingNumberFormat)
	if err != nil {
		return nil, err
	}
	r := &renderer{num: nf, timeLayout: o.DateTimeFormat, offsetLayout: o.DateTimeFormat}
	if strings.EqualFold(o.DateTimeFormat, RoundTripFormat) {
		r.timeLayout = roundTripLayout
		r.offsetLayout = roundTripOffsetLayout
	}
	return r, nil
}

type formatFunc func(r *renderer, dst []byte, v Value) []byte

// formatters maps every renderable kind to its formatter. KindInvalid renders as an empty cell.
var formatters = [kindCount]formatFunc{
	KindInvalid: func(_ *renderer, dst []byte, _ Value) []byte {
		return dst
	},
	KindInteger: func(_ *renderer, dst []byte, v Value) []byte {
		return strconv.AppendInt(dst, v.asInt(), 10)
	},
	KindUnsignedInteger: func(_ *renderer, dst []byte, v Value) []byte {
		return strconv.AppendUint(dst, v.bits, 10)
	},
	KindBoolean: func(_ *renderer, dst []byte, v Value) []byte {
		if v.bits != 0 {
			return append(dst, "True"...)
		}
		return append(dst, "False"...)
	},
	KindFloatingPoint: func(r *renderer, dst []byte, v Value) []byte {
		return r.num.appendFloat(dst, v.asFloat(), int(v.size))
	},
	KindDecimal: func(r *renderer, dst []byte, v Value) []byte {
		return r.num.appendRat(dst, v.dec)
	},
	KindString: func(_ *renderer, dst []byte, v Value) []byte {
		return append(dst, v.str...)
	},
	KindDateTime: func(r *renderer, dst []byte, v Value) []byte {
		return v.tm.AppendFormat(dst, r.timeLayout)
	},
	KindDateTimeWithOffset: func(r *renderer, dst []byte, v Value) []byte {
		return v.tm.AppendFormat(dst, r.offsetLayout)
	},
	KindDuration: func(_ *renderer, dst []byte, v Value) []byte {
		return append(dst, v.asDuration().String()...)
	},
	KindGUID: func(_ *renderer, dst []byte, v Value) []byte {
		return append(dst, v.id.String()...)
	},
	KindEnum: func(_ *renderer, dst []byte, v Value) []byte {
		return append(dst, v.str...)
	},
}

// appendValue renders v without escaping.
func (r *renderer) appendValue(dst []byte, v Value) []byte {
	if v.kind >= kindCount {
		return dst
	}
	return formatters[v.kind](r, dst, v)
}
