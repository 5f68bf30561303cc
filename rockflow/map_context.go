package rockflow

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"sync"
)

// MapContext is an in-memory reference context backed by a map of
// attributes. It is safe for concurrent use. Hosts use it in tests and
// tooling; production hosts supply their own Context.
type MapContext struct {
	mu       sync.RWMutex
	attrs    map[string]Value
	readOnly map[string]struct{}
}

// MapOption configures a MapContext at construction.
type MapOption func(*MapContext)

// WithReadOnly marks keys whose values SetInt must not change.
func WithReadOnly(keys ...string) MapOption {
	return func(c *MapContext) {
		for _, key := range keys {
			c.readOnly[key] = struct{}{}
		}
	}
}

var _ Context = (*MapContext)(nil)

// NewMapContext builds a context from one opaque initialization value. init
// must be nil or a map[string]any whose values are numbers, bools, strings,
// or homogeneous lists of those. Bools are stored as 0/1 ints, both alone
// and in lists, and mixed int/float lists widen to floats. Unsigned values
// above math.MaxInt64 are rejected rather than wrapped.
func NewMapContext(init any, opts ...MapOption) (*MapContext, error) {
	c := &MapContext{
		attrs:    make(map[string]Value),
		readOnly: make(map[string]struct{}),
	}
	switch raw := init.(type) {
	case nil:
	case map[string]any:
		for key, val := range raw {
			converted, err := attributeValue(val)
			if err != nil {
				return nil, fmt.Errorf("rockflow: attribute %q: %w", key, err)
			}
			c.attrs[key] = converted
		}
	case map[string]Value:
		maps.Copy(c.attrs, raw)
	default:
		return nil, fmt.Errorf("rockflow: map context init must be a map, got %T", init)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewMapContext constructs a MapContext or panics on an invalid init value.
func MustNewMapContext(init any, opts ...MapOption) *MapContext {
	c, err := NewMapContext(init, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *MapContext) lookup(key string) (Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.attrs[key]
	return val, ok
}

func (c *MapContext) GetInt(key string, def int64) int64 {
	if val, ok := c.lookup(key); ok && val.Kind() == KindInt {
		return val.Int()
	}
	return def
}

// GetDouble widens stored ints.
func (c *MapContext) GetDouble(key string, def float64) float64 {
	val, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch val.Kind() {
	case KindFloat:
		return val.Float()
	case KindInt:
		return float64(val.Int())
	default:
		return def
	}
}

func (c *MapContext) GetString(key string, def string) string {
	if val, ok := c.lookup(key); ok && val.Kind() == KindBytes {
		return val.Bytes()
	}
	return def
}

func (c *MapContext) GetIntList(key string) []int64 {
	if val, ok := c.lookup(key); ok && val.Kind() == KindIntList {
		return slices.Clone(val.IntList())
	}
	return []int64{}
}

func (c *MapContext) GetDoubleList(key string) []float64 {
	val, ok := c.lookup(key)
	if !ok {
		return []float64{}
	}
	switch val.Kind() {
	case KindFloatList:
		return slices.Clone(val.FloatList())
	case KindIntList:
		ints := val.IntList()
		out := make([]float64, len(ints))
		for i, n := range ints {
			out[i] = float64(n)
		}
		return out
	default:
		return []float64{}
	}
}

func (c *MapContext) GetStringList(key string) []string {
	if val, ok := c.lookup(key); ok && val.Kind() == KindStringList {
		return slices.Clone(val.StringList())
	}
	return []string{}
}

// SetInt stores value under key. Read-only keys report StatusReadOnly and
// keys holding a non-int value report StatusTypeMismatch; neither changes
// the stored value.
func (c *MapContext) SetInt(key string, value int64) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.readOnly[key]; ok {
		return StatusReadOnly
	}
	if existing, ok := c.attrs[key]; ok && existing.Kind() != KindInt {
		return StatusTypeMismatch
	}
	c.attrs[key] = NewInt(value)
	return StatusOK
}

// Keys returns the attribute names in sorted order.
func (c *MapContext) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.attrs))
	for key := range c.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Attr returns the raw stored value for key.
func (c *MapContext) Attr(key string) (Value, bool) {
	return c.lookup(key)
}

// ItemContext is a MapContext that also exposes child records through
// ItemSource.
type ItemContext struct {
	*MapContext
	items []*mapItem
}

type mapItem struct {
	*MapContext
	index int64
}

func (i *mapItem) Index() int64 { return i.index }

var (
	_ ItemSource       = (*ItemContext)(nil)
	_ ItemAttrAssigner = (*mapItem)(nil)
)

// NewItemContext builds a MapContext with child records. Each item is
// itself a MapContext; the returned context borrows them.
func NewItemContext(init any, items []*MapContext, opts ...MapOption) (*ItemContext, error) {
	base, err := NewMapContext(init, opts...)
	if err != nil {
		return nil, err
	}
	wrapped := make([]*mapItem, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("rockflow: item %d is nil", i)
		}
		wrapped[i] = &mapItem{MapContext: item, index: int64(i)}
	}
	return &ItemContext{MapContext: base, items: wrapped}, nil
}

func (c *ItemContext) GetItemCount() int64 { return int64(len(c.items)) }

func (c *ItemContext) GetItemAttrAssigner(index int64) (ItemAttrAssigner, error) {
	if index < 0 || index >= int64(len(c.items)) {
		return nil, &IndexError{Index: index, Count: int64(len(c.items))}
	}
	return c.items[index], nil
}

func attributeValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		return NewBytes(v), nil
	case []byte:
		return NewBytes(string(v)), nil
	case []int64:
		return NewIntList(slices.Clone(v)), nil
	case []float64:
		return NewFloatList(slices.Clone(v)), nil
	case []string:
		return NewStringList(slices.Clone(v)), nil
	case []any:
		return listValue(v)
	}
	if err := checkOverflow(raw); err != nil {
		return NewNil(), err
	}
	if n, ok := intScalar(raw); ok {
		return NewInt(n), nil
	}
	if f, ok := floatScalar(raw); ok {
		return NewFloat(f), nil
	}
	return NewNil(), fmt.Errorf("unsupported attribute value %T", raw)
}

func listValue(elems []any) (Value, error) {
	if len(elems) == 0 {
		return NewIntList(nil), nil
	}
	if _, ok := elems[0].(string); ok {
		out := make([]string, len(elems))
		for i, elem := range elems {
			s, ok := elem.(string)
			if !ok {
				return NewNil(), fmt.Errorf("mixed list element %d: %T", i, elem)
			}
			out[i] = s
		}
		return NewStringList(out), nil
	}
	ints := make([]int64, 0, len(elems))
	allInts := true
	for i, elem := range elems {
		if err := checkOverflow(elem); err != nil {
			return NewNil(), fmt.Errorf("list element %d: %w", i, err)
		}
		n, ok := intScalar(elem)
		if !ok {
			if _, isFloat := floatScalar(elem); !isFloat {
				return NewNil(), fmt.Errorf("mixed list element %d: %T", i, elem)
			}
			allInts = false
		}
		ints = append(ints, n)
	}
	if allInts {
		return NewIntList(ints), nil
	}
	floats := make([]float64, len(elems))
	for i, elem := range elems {
		if f, ok := floatScalar(elem); ok {
			floats[i] = f
			continue
		}
		floats[i] = float64(ints[i])
	}
	return NewFloatList(floats), nil
}

// intScalar converts integer-like values. Bools map to 0/1 and unsigned
// values that do not fit an int64 are refused.
func intScalar(raw any) (int64, bool) {
	switch n := raw.(type) {
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func checkOverflow(raw any) error {
	switch n := raw.(type) {
	case uint64:
		if n > math.MaxInt64 {
			return fmt.Errorf("integer %d overflows int64", n)
		}
	case uint:
		if uint64(n) > math.MaxInt64 {
			return fmt.Errorf("integer %d overflows int64", n)
		}
	}
	return nil
}

func floatScalar(raw any) (float64, bool) {
	switch f := raw.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}
