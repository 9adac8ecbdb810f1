package csvgen

// Kind classifies the value type of a field and selects its formatting rule.
type Kind uint8

const (
	// KindInvalid marks a field that cannot be rendered. Such fields are never selected.
	KindInvalid Kind = iota
	KindInteger
	KindUnsignedInteger
	KindBoolean
	KindFloatingPoint
	KindDecimal
	KindString
	KindDateTime
	KindDateTimeWithOffset
	KindDuration
	KindGUID
	KindEnum

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:            "Invalid",
	KindInteger:            "Integer",
	KindUnsignedInteger:    "UnsignedInteger",
	KindBoolean:            "Boolean",
	KindFloatingPoint:      "FloatingPoint",
	KindDecimal:            "Decimal",
	KindString:             "String",
	KindDateTime:           "DateTime",
	KindDateTimeWithOffset: "DateTimeWithOffset",
	KindDuration:           "Duration",
	KindGUID:               "Guid",
	KindEnum:               "Enum",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// Valid reports whether k is one of the renderable kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// ValueKind is the declared kind of a field, possibly wrapped as optional.
type ValueKind struct {
	base     Kind
	optional bool
}

// KindOf returns the non-optional ValueKind for k.
func KindOf(k Kind) ValueKind {
	return ValueKind{base: k}
}

// OptionalOf wraps vk as optional. Wrapping an optional kind again is a no-op.
func OptionalOf(vk ValueKind) ValueKind {
	vk.optional = true
	return vk
}

// Base returns the wrapped kind.
func (vk ValueKind) Base() Kind { return vk.base }

// Optional reports whether the field may carry no value.
func (vk ValueKind) Optional() bool { return vk.optional }

// Valid reports whether the underlying kind is renderable.
func (vk ValueKind) Valid() bool { return vk.base.Valid() }

func (vk ValueKind) String() string {
	if vk.optional {
		return "Optional(" + vk.base.String() + ")"
	}
	return vk.base.String()
}
