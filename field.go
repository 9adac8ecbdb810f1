package csvgen

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Field describes one CSV column of a record type: its header name, declared kind and accessor.
// A Field is immutable once built.
type Field[T any] struct {
	name string
	kind ValueKind
	get  func(T) Value
}

// NewField builds a field from an arbitrary accessor. The accessor should return
// values of kind.Base() or Null(); Null() is only meaningful for optional kinds
// and reference-like values such as decimals.
func NewField[T any](name string, kind ValueKind, get func(T) Value) Field[T] {
	return Field[T]{name: name, kind: kind, get: get}
}

// Name returns the header text of the field.
func (f Field[T]) Name() string { return f.name }

// Kind returns the declared kind of the field.
func (f Field[T]) Kind() ValueKind { return f.kind }

// Value extracts the field value from rec.
func (f Field[T]) Value(rec T) Value {
	if f.get == nil {
		return Null()
	}
	return f.get(rec)
}

func (f Field[T]) eligible() bool {
	return f.kind.Valid() && f.get != nil
}

func scalar[T, V any](name string, k Kind, get func(T) V, conv func(V) Value) Field[T] {
	if get == nil {
		return Field[T]{name: name, kind: KindOf(k)}
	}
	return Field[T]{name: name, kind: KindOf(k), get: func(rec T) Value {
		return conv(get(rec))
	}}
}

func optional[T, V any](name string, k Kind, get func(T) *V, conv func(V) Value) Field[T] {
	if get == nil {
		return Field[T]{name: name, kind: OptionalOf(KindOf(k))}
	}
	return Field[T]{name: name, kind: OptionalOf(KindOf(k)), get: func(rec T) Value {
		p := get(rec)
		if p == nil {
			return Null()
		}
		return conv(*p)
	}}
}

func signedValue[N constraints.Signed](v N) Value     { return IntValue(int64(v)) }
func unsignedValue[N constraints.Unsigned](v N) Value { return UintValue(uint64(v)) }
func stringerValue[E fmt.Stringer](v E) Value         { return EnumValue(v.String()) }

// floatConv keeps single precision for float32-based types.
func floatConv[F constraints.Float]() func(F) Value {
	if reflect.TypeFor[F]().Kind() == reflect.Float32 {
		return func(v F) Value { return Float32Value(float32(v)) }
	}
	return func(v F) Value { return FloatValue(float64(v)) }
}

// Int declares a signed integer field.
func Int[T any, N constraints.Signed](name string, get func(T) N) Field[T] {
	return scalar(name, KindInteger, get, signedValue[N])
}

// OptionalInt declares a signed integer field that is absent when get returns nil.
func OptionalInt[T any, N constraints.Signed](name string, get func(T) *N) Field[T] {
	return optional(name, KindInteger, get, signedValue[N])
}

// Uint declares an unsigned integer field.
func Uint[T any, N constraints.Unsigned](name string, get func(T) N) Field[T] {
	return scalar(name, KindUnsignedInteger, get, unsignedValue[N])
}

// OptionalUint declares an unsigned integer field that is absent when get returns nil.
func OptionalUint[T any, N constraints.Unsigned](name string, get func(T) *N) Field[T] {
	return optional(name, KindUnsignedInteger, get, unsignedValue[N])
}

// Bool declares a boolean field.
func Bool[T any](name string, get func(T) bool) Field[T] {
	return scalar(name, KindBoolean, get, BoolValue)
}

// OptionalBool declares a boolean field that is absent when get returns nil.
func OptionalBool[T any](name string, get func(T) *bool) Field[T] {
	return optional(name, KindBoolean, get, BoolValue)
}

// Float declares a floating point field, formatted with Options.FloatingNumberFormat.
func Float[T any, F constraints.Float](name string, get func(T) F) Field[T] {
	return scalar(name, KindFloatingPoint, get, floatConv[F]())
}

// OptionalFloat declares a floating point field that is absent when get returns nil.
func OptionalFloat[T any, F constraints.Float](name string, get func(T) *F) Field[T] {
	return optional(name, KindFloatingPoint, get, floatConv[F]())
}

// Decimal declares a high-precision decimal field. A nil result is absent.
func Decimal[T any](name string, get func(T) *big.Rat) Field[T] {
	return scalar(name, KindDecimal, get, DecimalValue)
}

// String declares a string field.
func String[T any](name string, get func(T) string) Field[T] {
	return scalar(name, KindString, get, StringValue)
}

// OptionalString declares a string field that is absent when get returns nil.
func OptionalString[T any](name string, get func(T) *string) Field[T] {
	return optional(name, KindString, get, StringValue)
}

// DateTime declares a date-time field.
func DateTime[T any](name string, get func(T) time.Time) Field[T] {
	return scalar(name, KindDateTime, get, TimeValue)
}

// OptionalDateTime declares a date-time field that is absent when get returns nil.
func OptionalDateTime[T any](name string, get func(T) *time.Time) Field[T] {
	return optional(name, KindDateTime, get, TimeValue)
}

// DateTimeOffset declares a date-time field that always renders its UTC offset.
func DateTimeOffset[T any](name string, get func(T) time.Time) Field[T] {
	return scalar(name, KindDateTimeWithOffset, get, TimeOffsetValue)
}

// OptionalDateTimeOffset declares a date-time-with-offset field that is absent when get returns nil.
func OptionalDateTimeOffset[T any](name string, get func(T) *time.Time) Field[T] {
	return optional(name, KindDateTimeWithOffset, get, TimeOffsetValue)
}

// Duration declares a duration field.
func Duration[T any](name string, get func(T) time.Duration) Field[T] {
	return scalar(name, KindDuration, get, DurationValue)
}

// OptionalDuration declares a duration field that is absent when get returns nil.
func OptionalDuration[T any](name string, get func(T) *time.Duration) Field[T] {
	return optional(name, KindDuration, get, DurationValue)
}

// GUID declares a unique identifier field.
func GUID[T any](name string, get func(T) uuid.UUID) Field[T] {
	return scalar(name, KindGUID, get, GUIDValue)
}

// OptionalGUID declares a unique identifier field that is absent when get returns nil.
func OptionalGUID[T any](name string, get func(T) *uuid.UUID) Field[T] {
	return optional(name, KindGUID, get, GUIDValue)
}

// Enum declares an enumerated field rendered by its symbolic name.
func Enum[T any, E fmt.Stringer](name string, get func(T) E) Field[T] {
	return scalar(name, KindEnum, get, stringerValue[E])
}

// OptionalEnum declares an enumerated field that is absent when get returns nil.
func OptionalEnum[T any, E fmt.Stringer](name string, get func(T) *E) Field[T] {
	return optional(name, KindEnum, get, stringerValue[E])
}
