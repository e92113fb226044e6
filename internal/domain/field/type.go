package field

// Type is a field type name as written in a field specification.
type Type string

// Registry type names.
const (
	String      Type = "String"
	ShortString Type = "ShortString"
	LatLong     Type = "LatLong"
	Set         Type = "Set"
	Text        Type = "Text"
	Categorical Type = "Categorical"
	Exists      Type = "Exists"
	Custom      Type = "Custom"
	Exact       Type = "Exact"
	Interaction Type = "Interaction"
)

// Types returns every registry type name in declaration order.
func Types() []Type {
	return []Type{String, ShortString, LatLong, Set, Text, Categorical, Exists, Custom, Exact, Interaction}
}

// IsAtomic reports whether t compares a single record value with a fixed comparator.
func (t Type) IsAtomic() bool {
	switch t {
	case String, ShortString, LatLong, Set, Text, Exact:
		return true
	default:
		return false
	}
}

// Kind is the variant tag of a Descriptor.
type Kind int

// Descriptor variants.
const (
	KindAtomic Kind = iota
	KindCustom
	KindCategorical
	KindDummy
	KindExists
	KindInteraction
	KindInteractionTerm
	KindMissing
)

var kindNames = [...]string{
	KindAtomic:          "atomic",
	KindCustom:          "custom",
	KindCategorical:     "categorical",
	KindDummy:           "dummy",
	KindExists:          "exists",
	KindInteraction:     "interaction",
	KindInteractionTerm: "interaction_term",
	KindMissing:         "missing",
}

// String returns the lowercase variant name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// HasComparator reports whether descriptors of this kind occupy comparator slots.
func (k Kind) HasComparator() bool {
	switch k {
	case KindAtomic, KindCustom, KindCategorical, KindExists:
		return true
	default:
		return false
	}
}
