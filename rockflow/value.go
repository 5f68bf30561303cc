package rockflow

// ValueKind identifies which declared IR type a Value holds.
type ValueKind int

// Value kinds. KindBytes holds a string view; the list kinds hold read-only
// slices.
const (
	KindNil ValueKind = iota
	KindInt
	KindFloat
	KindBytes
	KindIntList
	KindFloatList
	KindStringList
	KindContext
)

// Value carries arguments and results across the builtin call boundary.
type Value struct {
	kind ValueKind
	data any
}

// Scalar constructors. NewBytes keeps the string as-is; no bytes are copied.
func NewNil() Value            { return Value{kind: KindNil} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewBytes(s string) Value  { return Value{kind: KindBytes, data: s} }

// NewIntList wraps l without copying. List constructors normalize nil to an
// empty snapshot.
func NewIntList(l []int64) Value {
	if l == nil {
		l = []int64{}
	}
	return Value{kind: KindIntList, data: l}
}

func NewFloatList(l []float64) Value {
	if l == nil {
		l = []float64{}
	}
	return Value{kind: KindFloatList, data: l}
}

func NewStringList(l []string) Value {
	if l == nil {
		l = []string{}
	}
	return Value{kind: KindStringList, data: l}
}

// NewContext wraps a borrowed context handle. The Value never owns ctx.
func NewContext(ctx Context) Value {
	if ctx == nil {
		return NewNil()
	}
	return Value{kind: KindContext, data: ctx}
}

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindIntList:
		return "int_list"
	case KindFloatList:
		return "float_list"
	case KindStringList:
		return "string_list"
	case KindContext:
		return "context"
	default:
		return "unknown"
	}
}
