package rockflow

// Status is the result code of a context write. StatusOK means the write was
// accepted; any other value means the context rejected it unchanged.
type Status int

const (
	StatusOK Status = iota
	StatusReadOnly
	StatusTypeMismatch
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusReadOnly:
		return "read_only"
	case StatusTypeMismatch:
		return "type_mismatch"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Context is the attribute-access contract every host context satisfies.
//
// Getters never fail: an absent key (or one holding an incompatible type)
// resolves to def, and list getters resolve to an empty slice. Returned
// strings are immutable views; returned slices are snapshots the caller must
// not mutate. Implementations own their own thread-safety.
type Context interface {
	GetInt(key string, def int64) int64
	GetDouble(key string, def float64) float64
	GetString(key string, def string) string
	GetIntList(key string) []int64
	GetDoubleList(key string) []float64
	GetStringList(key string) []string
	SetInt(key string, value int64) Status
}

// ItemSource is an optional capability for contexts that expose a
// collection of child records. Probe it with AsItemSource before use.
type ItemSource interface {
	GetItemCount() int64
	GetItemAttrAssigner(index int64) (ItemAttrAssigner, error)
}

// ItemAttrAssigner reads and writes the attributes of one sub-item.
type ItemAttrAssigner interface {
	Context
	Index() int64
}

// AsItemSource reports whether ctx implements the item capability.
func AsItemSource(ctx Context) (ItemSource, bool) {
	src, ok := ctx.(ItemSource)
	return src, ok
}
