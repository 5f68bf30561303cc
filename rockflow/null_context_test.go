package rockflow

import "testing"

func TestNullContextReturnsCallerDefaults(t *testing.T) {
	var ctx Context = NullContext{}

	if got := ctx.GetInt("age", -1); got != -1 {
		t.Fatalf("GetInt default = %d, want -1", got)
	}
	if got := ctx.GetInt("age", 42); got != 42 {
		t.Fatalf("GetInt default = %d, want 42", got)
	}
	if got := ctx.GetDouble("ratio", 0.25); got != 0.25 {
		t.Fatalf("GetDouble default = %g, want 0.25", got)
	}
	if got := ctx.GetString("name", "anon"); got != "anon" {
		t.Fatalf("GetString default = %q, want anon", got)
	}
}

func TestNullContextListsAreEmptyNotNil(t *testing.T) {
	ctx := NullContext{}

	if got := ctx.GetIntList("scores"); got == nil || len(got) != 0 {
		t.Fatalf("GetIntList = %#v, want empty slice", got)
	}
	if got := ctx.GetDoubleList("weights"); got == nil || len(got) != 0 {
		t.Fatalf("GetDoubleList = %#v, want empty slice", got)
	}
	if got := ctx.GetStringList("tags"); got == nil || len(got) != 0 {
		t.Fatalf("GetStringList = %#v, want empty slice", got)
	}
}

func TestNullContextSetIntIsAcceptedNoop(t *testing.T) {
	ctx := NullContext{}

	if status := ctx.SetInt("age", 7); status != StatusOK {
		t.Fatalf("SetInt status = %v, want ok", status)
	}
	if got := ctx.GetInt("age", -1); got != -1 {
		t.Fatalf("SetInt mutated null context: got %d", got)
	}
}

func TestNullContextIsNotAnItemSource(t *testing.T) {
	if _, ok := AsItemSource(NullContext{}); ok {
		t.Fatalf("null context must not advertise item access")
	}
}

type partialContext struct {
	NullContext
	age int64
}

func (p partialContext) GetInt(key string, def int64) int64 {
	if key == "age" {
		return p.age
	}
	return def
}

func TestNullContextEmbeddingCoversUnbackedAccessors(t *testing.T) {
	var ctx Context = partialContext{age: 30}

	if got := ctx.GetInt("age", -1); got != 30 {
		t.Fatalf("GetInt age = %d, want 30", got)
	}
	if got := ctx.GetInt("height", -1); got != -1 {
		t.Fatalf("GetInt height = %d, want -1", got)
	}
	if got := ctx.GetString("name", "x"); got != "x" {
		t.Fatalf("GetString fallback = %q, want x", got)
	}
}
