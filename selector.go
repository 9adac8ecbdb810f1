package csvgen

import (
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Describer is implemented by record types that declare their CSV fields explicitly.
// CSVFields is called once when a Generator is built, on the zero value of T or,
// when T is a pointer type, on a pointer to a zero element.
type Describer[T any] interface {
	CSVFields() []Field[T]
}

// SelectFields returns the ordered, eligible fields of T.
//
// If T (or *T) implements Describer[T], its declared fields are used. Otherwise T
// must be a struct or a pointer to a struct; its exported fields are classified in
// declaration order and those without a known kind are left out. Fields with an
// invalid kind or no accessor are always dropped.
func SelectFields[T any]() []Field[T] {
	fields, _ := selectFields[T]()
	return fields
}

// selectFields also reports the names of struct fields that were left out.
func selectFields[T any]() ([]Field[T], []string) {
	var zero T
	if rt := reflect.TypeFor[T](); rt.Kind() == reflect.Pointer {
		zero = reflect.New(rt.Elem()).Interface().(T)
	}
	if d, ok := any(zero).(Describer[T]); ok {
		return eligibleFields(d.CSVFields())
	}
	if d, ok := any(&zero).(Describer[T]); ok {
		return eligibleFields(d.CSVFields())
	}
	return structFields[T]()
}

func eligibleFields[T any](declared []Field[T]) ([]Field[T], []string) {
	fields := make([]Field[T], 0, len(declared))
	var skipped []string
	for _, f := range declared {
		if !f.eligible() {
			skipped = append(skipped, f.name)
			continue
		}
		fields = append(fields, f)
	}
	return slices.Clip(fields), skipped
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
	ratType      = reflect.TypeFor[big.Rat]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// reflectConv turns a non-pointer struct field value into a Value.
type reflectConv func(reflect.Value) Value

// classify maps a field type to its kind and converter in a single pass.
// ok is false for types that cannot be rendered.
func classify(t reflect.Type, offset bool) (vk ValueKind, conv reflectConv, ok bool) {
	if t.Kind() == reflect.Pointer {
		elem := t.Elem()
		if elem == ratType {
			return KindOf(KindDecimal), func(v reflect.Value) Value {
				if v.IsNil() {
					return Null()
				}
				return DecimalValue(v.Interface().(*big.Rat))
			}, true
		}
		if elem.Kind() == reflect.Pointer {
			return ValueKind{}, nil, false
		}
		inner, innerConv, ok := classify(elem, offset)
		if !ok {
			return ValueKind{}, nil, false
		}
		return OptionalOf(inner), func(v reflect.Value) Value {
			if v.IsNil() {
				return Null()
			}
			return innerConv(v.Elem())
		}, true
	}

	switch t {
	case timeType:
		if offset {
			return KindOf(KindDateTimeWithOffset), func(v reflect.Value) Value {
				return TimeOffsetValue(v.Interface().(time.Time))
			}, true
		}
		return KindOf(KindDateTime), func(v reflect.Value) Value {
			return TimeValue(v.Interface().(time.Time))
		}, true
	case durationType:
		return KindOf(KindDuration), func(v reflect.Value) Value {
			return DurationValue(time.Duration(v.Int()))
		}, true
	case uuidType:
		return KindOf(KindGUID), func(v reflect.Value) Value {
			return GUIDValue(v.Interface().(uuid.UUID))
		}, true
	case ratType:
		return KindOf(KindDecimal), func(v reflect.Value) Value {
			r := v.Interface().(big.Rat)
			return DecimalValue(&r)
		}, true
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if t.Implements(stringerType) {
			return KindOf(KindEnum), func(v reflect.Value) Value {
				return EnumValue(v.Interface().(fmt.Stringer).String())
			}, true
		}
		if t.Kind() >= reflect.Uint {
			return KindOf(KindUnsignedInteger), func(v reflect.Value) Value {
				return UintValue(v.Uint())
			}, true
		}
		return KindOf(KindInteger), func(v reflect.Value) Value {
			return IntValue(v.Int())
		}, true
	case reflect.Bool:
		return KindOf(KindBoolean), func(v reflect.Value) Value {
			return BoolValue(v.Bool())
		}, true
	case reflect.Float32:
		return KindOf(KindFloatingPoint), func(v reflect.Value) Value {
			return Float32Value(float32(v.Float()))
		}, true
	case reflect.Float64:
		return KindOf(KindFloatingPoint), func(v reflect.Value) Value {
			return FloatValue(v.Float())
		}, true
	case reflect.String:
		return KindOf(KindString), func(v reflect.Value) Value {
			return StringValue(v.String())
		}, true
	}
	return ValueKind{}, nil, false
}

// structFields discovers the eligible exported fields of a struct record type,
// including fields promoted from embedded structs. A `csv:"Name"` tag renames
// the column, `csv:"-"` drops it (or the whole embedded struct), and the
// `offset` option (`csv:",offset"`) renders a time.Time with its UTC offset.
func structFields[T any]() ([]Field[T], []string) {
	rt := reflect.TypeFor[T]()
	isPtr := rt.Kind() == reflect.Pointer
	if isPtr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, nil
	}

	var (
		fields  []Field[T]
		skipped []string
		dropped [][]int
	)
	for _, sf := range reflect.VisibleFields(rt) {
		if underDropped(dropped, sf.Index) {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("csv"), ",")
		if sf.Anonymous && embedsStruct(sf.Type) {
			if name == "-" && opts == "" {
				dropped = append(dropped, sf.Index)
				skipped = append(skipped, sf.Name)
			}
			continue
		}
		if !sf.IsExported() {
			skipped = append(skipped, sf.Name)
			continue
		}
		if name == "-" && opts == "" {
			skipped = append(skipped, sf.Name)
			continue
		}
		if name == "" {
			name = sf.Name
		}
		vk, conv, ok := classify(sf.Type, hasTagOption(opts, "offset"))
		if !ok {
			skipped = append(skipped, sf.Name)
			continue
		}
		index := sf.Index
		fields = append(fields, Field[T]{name: name, kind: vk, get: func(rec T) Value {
			v := reflect.ValueOf(rec)
			if isPtr {
				if v.IsNil() {
					return Null()
				}
				v = v.Elem()
			}
			// a nil embedded pointer leaves its promoted fields absent
			fv, err := v.FieldByIndexErr(index)
			if err != nil {
				return Null()
			}
			return conv(fv)
		}})
	}
	return fields, skipped
}

// embedsStruct reports whether an embedded field of type t only contributes
// its promoted fields. Struct types rendered as a single cell do not.
func embedsStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	return t != timeType && t != ratType
}

func underDropped(dropped [][]int, index []int) bool {
	for _, prefix := range dropped {
		if len(index) > len(prefix) && slices.Equal(index[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}

func hasTagOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}
