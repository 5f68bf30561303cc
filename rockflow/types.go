package rockflow

// Type is a declared IR type name as it appears in builtin signatures.
type Type string

const (
	TypeContext    Type = "RockflowContext"
	TypeBytes      Type = "bytes"
	TypeInt        Type = "int"
	TypeFloat      Type = "float"
	TypeIntList    Type = "FTList[int]"
	TypeFloatList  Type = "FTList[float]"
	TypeStringList Type = "FTList[bytes]"
)

var typeKinds = map[Type]ValueKind{
	TypeContext:    KindContext,
	TypeBytes:      KindBytes,
	TypeInt:        KindInt,
	TypeFloat:      KindFloat,
	TypeIntList:    KindIntList,
	TypeFloatList:  KindFloatList,
	TypeStringList: KindStringList,
}

// Known reports whether t is one of the declared IR types.
func (t Type) Known() bool {
	_, ok := typeKinds[t]
	return ok
}

// Accepts reports whether a runtime value kind satisfies t exactly.
func (t Type) Accepts(kind ValueKind) bool {
	want, ok := typeKinds[t]
	return ok && want == kind
}

// TypeOf returns the declared type a value satisfies, or "" for nil.
func TypeOf(v Value) Type {
	for t, kind := range typeKinds {
		if kind == v.Kind() {
			return t
		}
	}
	return ""
}

func (t Type) String() string { return string(t) }
