package rockflow

// Accessors return the zero value of their Go type when v holds a different
// kind; check Kind first when the distinction matters.

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Int() int64 {
	if v.kind == KindInt {
		return v.data.(int64)
	}
	return 0
}

func (v Value) Float() float64 {
	if v.kind == KindFloat {
		return v.data.(float64)
	}
	return 0
}

// Bytes returns the string view held by a bytes value.
func (v Value) Bytes() string {
	if v.kind == KindBytes {
		return v.data.(string)
	}
	return ""
}

// IntList returns the backing slice. Callers must not modify it.
func (v Value) IntList() []int64 {
	if v.kind != KindIntList {
		return nil
	}
	return v.data.([]int64)
}

func (v Value) FloatList() []float64 {
	if v.kind != KindFloatList {
		return nil
	}
	return v.data.([]float64)
}

func (v Value) StringList() []string {
	if v.kind != KindStringList {
		return nil
	}
	return v.data.([]string)
}

// Context returns the borrowed handle of a context value, or nil.
func (v Value) Context() Context {
	if v.kind != KindContext {
		return nil
	}
	return v.data.(Context)
}
