package csvgen

import (
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Value holds a single field value tagged with its kind. The zero Value is absent.
type Value struct {
	kind Kind
	bits uint64 // integer, unsigned, boolean, duration or float payload
	size uint8  // float bit size
	str  string // string or enum name
	tm   time.Time
	dec  *big.Rat
	id   uuid.UUID
}

// Null returns the absent value. It renders as an empty cell.
func Null() Value { return Value{} }

// IntValue returns a signed integer value.
func IntValue(v int64) Value { return Value{kind: KindInteger, bits: uint64(v)} }

// UintValue returns an unsigned integer value.
func UintValue(v uint64) Value { return Value{kind: KindUnsignedInteger, bits: v} }

// BoolValue returns a boolean value.
func BoolValue(v bool) Value {
	var b uint64
	if v {
		b = 1
	}
	return Value{kind: KindBoolean, bits: b}
}

// FloatValue returns a float64 value.
func FloatValue(v float64) Value {
	return Value{kind: KindFloatingPoint, bits: math.Float64bits(v), size: 64}
}

// Float32Value returns a float32 value. It keeps its single precision so that
// 42.42 is formatted from its shortest float32 representation.
func Float32Value(v float32) Value {
	return Value{kind: KindFloatingPoint, bits: math.Float64bits(float64(v)), size: 32}
}

// DecimalValue returns a high-precision decimal value. A nil v is absent.
func DecimalValue(v *big.Rat) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindDecimal, dec: new(big.Rat).Set(v)}
}

// StringValue returns a string value.
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// TimeValue returns a date-time value rendered without forcing a numeric offset.
func TimeValue(v time.Time) Value { return Value{kind: KindDateTime, tm: v} }

// TimeOffsetValue returns a date-time value that always renders its UTC offset.
func TimeOffsetValue(v time.Time) Value { return Value{kind: KindDateTimeWithOffset, tm: v} }

// DurationValue returns a duration value.
func DurationValue(v time.Duration) Value { return Value{kind: KindDuration, bits: uint64(v)} }

// GUIDValue returns a unique identifier value.
func GUIDValue(v uuid.UUID) Value { return Value{kind: KindGUID, id: v} }

// EnumValue returns an enum member identified by its symbolic name.
func EnumValue(name string) Value { return Value{kind: KindEnum, str: name} }

// Kind returns the kind of v, or KindInvalid when v is absent.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool { return v.kind == KindInvalid }

func (v Value) asInt() int64 { return int64(v.bits) }

func (v Value) asFloat() float64 { return math.Float64frombits(v.bits) }

func (v Value) asDuration() time.Duration { return time.Duration(int64(v.bits)) }
