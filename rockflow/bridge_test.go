package rockflow

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newContextRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := RegisterContextBuiltins(r); err != nil {
		t.Fatalf("register context builtins: %v", err)
	}
	r.Seal()
	return r
}

func callContext(t *testing.T, r *Registry, method string, args ...Value) Value {
	t.Helper()
	result, err := r.Call(ContextNamespace+"."+method, args)
	if err != nil {
		t.Fatalf("%s failed: %v", method, err)
	}
	return result
}

func TestContextBuiltinNames(t *testing.T) {
	r := newContextRegistry(t)
	want := []string{
		"rockflow_context.get_double",
		"rockflow_context.get_double_list",
		"rockflow_context.get_int",
		"rockflow_context.get_int_list",
		"rockflow_context.get_item_attr_assigner",
		"rockflow_context.get_item_count",
		"rockflow_context.get_string",
		"rockflow_context.get_string_list",
		"rockflow_context.set_int",
	}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected builtin names:\n got %v\nwant %v", got, want)
	}
}

func TestContextBuiltinsRegisterOnlyOnce(t *testing.T) {
	r := NewRegistry()
	if err := RegisterContextBuiltins(r); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	err := RegisterContextBuiltins(r)
	if !errors.Is(err, ErrDuplicateBuiltin) {
		t.Fatalf("expected duplicate builtin error, got %v", err)
	}
}

// Every declared parameter list must mirror the native method exactly.
func TestContextBuiltinSignatures(t *testing.T) {
	goToIR := map[reflect.Type]Type{
		reflect.TypeOf(""):                              TypeBytes,
		reflect.TypeOf(int64(0)):                        TypeInt,
		reflect.TypeOf(float64(0)):                      TypeFloat,
		reflect.TypeOf([]int64(nil)):                    TypeIntList,
		reflect.TypeOf([]float64(nil)):                  TypeFloatList,
		reflect.TypeOf([]string(nil)):                   TypeStringList,
		reflect.TypeOf(Status(0)):                       TypeInt,
		reflect.TypeOf((*ItemAttrAssigner)(nil)).Elem(): TypeContext,
	}
	ifaces := []reflect.Type{
		reflect.TypeOf((*Context)(nil)).Elem(),
		reflect.TypeOf((*ItemSource)(nil)).Elem(),
	}

	r := newContextRegistry(t)
	for _, name := range r.Names() {
		b, _ := r.Lookup(name)
		methodName := camelMethodName(strings.TrimPrefix(name, ContextNamespace+"."))

		var method reflect.Method
		found := false
		for _, iface := range ifaces {
			if m, ok := iface.MethodByName(methodName); ok {
				method, found = m, true
				break
			}
		}
		if !found {
			t.Fatalf("%s has no native method %s", name, methodName)
		}

		if b.Params[0].Name != "self" || b.Params[0].Type != TypeContext {
			t.Fatalf("%s: receiver must be argument 0, got %+v", name, b.Params[0])
		}
		if got, want := b.NumInputs()-1, method.Type.NumIn(); got != want {
			t.Fatalf("%s declares %d argument(s), %s takes %d", name, got, methodName, want)
		}
		for i := 0; i < method.Type.NumIn(); i++ {
			want, ok := goToIR[method.Type.In(i)]
			if !ok {
				t.Fatalf("%s: unmapped native type %s", name, method.Type.In(i))
			}
			if got := b.Params[i+1].Type; got != want {
				t.Fatalf("%s argument %d declared %s, native %s", name, i+1, got, want)
			}
		}
		if want := goToIR[method.Type.Out(0)]; b.Result != want {
			t.Fatalf("%s result declared %s, native %s", name, b.Result, want)
		}
	}
}

func camelMethodName(snake string) string {
	var b strings.Builder
	for _, part := range strings.Split(snake, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func TestContextBuiltinsAgeExample(t *testing.T) {
	r := newContextRegistry(t)
	ctx := NewContext(MustNewMapContext(map[string]any{"age": 30}))

	if got := callContext(t, r, "get_int", ctx, NewBytes("age"), NewInt(-1)); got.Int() != 30 {
		t.Fatalf("get_int age = %s, want 30", got)
	}
	if got := callContext(t, r, "get_int", ctx, NewBytes("height"), NewInt(-1)); got.Int() != -1 {
		t.Fatalf("get_int height = %s, want -1", got)
	}
	scores := callContext(t, r, "get_int_list", ctx, NewBytes("scores"))
	if scores.Kind() != KindIntList || len(scores.IntList()) != 0 {
		t.Fatalf("get_int_list scores = %s, want []", scores)
	}

	_, err := r.Call("rockflow_context.get_item_count", []Value{ctx})
	var unsupported *UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected unsupported operation, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("unsupported error must match ErrUnsupportedOperation")
	}
	if unsupported.Op != "rockflow_context.get_item_count" {
		t.Fatalf("unexpected op %q", unsupported.Op)
	}
}

func TestContextBuiltinsDefaultsOnNullContext(t *testing.T) {
	r := newContextRegistry(t)
	ctx := NewContext(NullContext{})

	if got := callContext(t, r, "get_double", ctx, NewBytes("x"), NewFloat(2.5)); got.Float() != 2.5 {
		t.Fatalf("get_double = %s", got)
	}
	if got := callContext(t, r, "get_string", ctx, NewBytes("x"), NewBytes("dflt")); got.Bytes() != "dflt" {
		t.Fatalf("get_string = %s", got)
	}
	for _, method := range []string{"get_int_list", "get_double_list", "get_string_list"} {
		got := callContext(t, r, method, ctx, NewBytes("x"))
		if got.String() != "[]" {
			t.Fatalf("%s = %s, want []", method, got)
		}
	}
	if got := callContext(t, r, "set_int", ctx, NewBytes("x"), NewInt(1)); got.Int() != int64(StatusOK) {
		t.Fatalf("set_int = %s, want 0", got)
	}

	_, err := r.Call("rockflow_context.get_item_attr_assigner", []Value{ctx, NewInt(0)})
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected unsupported operation, got %v", err)
	}
}

func TestContextBuiltinsSetIntStatus(t *testing.T) {
	r := newContextRegistry(t)
	mc := MustNewMapContext(map[string]any{"age": 30, "tier": 2}, WithReadOnly("tier"))
	ctx := NewContext(mc)

	if got := callContext(t, r, "set_int", ctx, NewBytes("age"), NewInt(31)); got.Int() != 0 {
		t.Fatalf("set_int age status = %s", got)
	}
	if got := callContext(t, r, "get_int", ctx, NewBytes("age"), NewInt(-1)); got.Int() != 31 {
		t.Fatalf("read-after-write age = %s", got)
	}
	if got := callContext(t, r, "set_int", ctx, NewBytes("tier"), NewInt(9)); got.Int() != int64(StatusReadOnly) {
		t.Fatalf("set_int tier status = %s", got)
	}
	if got := callContext(t, r, "get_int", ctx, NewBytes("tier"), NewInt(-1)); got.Int() != 2 {
		t.Fatalf("read-only tier changed to %s", got)
	}
}

func TestContextBuiltinsItemAccess(t *testing.T) {
	r := newContextRegistry(t)
	ic, err := NewItemContext(nil, []*MapContext{
		MustNewMapContext(map[string]any{"tags": []any{"x"}}),
		MustNewMapContext(map[string]any{"tags": []any{"y", "z"}}),
	})
	if err != nil {
		t.Fatalf("new item context: %v", err)
	}
	ctx := NewContext(ic)

	if got := callContext(t, r, "get_item_count", ctx); got.Int() != 2 {
		t.Fatalf("get_item_count = %s", got)
	}
	item := callContext(t, r, "get_item_attr_assigner", ctx, NewInt(1))
	if item.Kind() != KindContext {
		t.Fatalf("assigner kind = %v", item.Kind())
	}
	if got := item.String(); got != "<context item 1>" {
		t.Fatalf("assigner string = %q", got)
	}
	tags := callContext(t, r, "get_string_list", item, NewBytes("tags"))
	if got := tags.StringList(); !reflect.DeepEqual(got, []string{"y", "z"}) {
		t.Fatalf("item tags = %v", got)
	}

	_, err = r.Call("rockflow_context.get_item_attr_assigner", []Value{ctx, NewInt(5)})
	var indexErr *IndexError
	if !errors.As(err, &indexErr) {
		t.Fatalf("expected index error, got %v", err)
	}
}
