package rockflow

// ContextNamespace prefixes every context accessor builtin.
const ContextNamespace = "rockflow_context"

var (
	selfParam = Param{Name: "self", Type: TypeContext}
	attrParam = Param{Name: "attr_name", Type: TypeBytes}
)

// RegisterContextBuiltins registers one builtin per Context and ItemSource
// operation. It stops at the first registration error.
func RegisterContextBuiltins(r *Registry) error {
	for _, b := range contextBuiltins() {
		if err := r.Register(b); err != nil {
			return err
		}
	}
	return nil
}

func contextBuiltins() []Builtin {
	return []Builtin{
		{
			Name:   ContextNamespace + ".get_int",
			Params: []Param{selfParam, attrParam, {Name: "default_value", Type: TypeInt}},
			Result: TypeInt,
			Fn: func(args []Value) (Value, error) {
				return NewInt(args[0].Context().GetInt(args[1].Bytes(), args[2].Int())), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_double",
			Params: []Param{selfParam, attrParam, {Name: "default_value", Type: TypeFloat}},
			Result: TypeFloat,
			Fn: func(args []Value) (Value, error) {
				return NewFloat(args[0].Context().GetDouble(args[1].Bytes(), args[2].Float())), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_string",
			Params: []Param{selfParam, attrParam, {Name: "default_value", Type: TypeBytes}},
			Result: TypeBytes,
			Fn: func(args []Value) (Value, error) {
				return NewBytes(args[0].Context().GetString(args[1].Bytes(), args[2].Bytes())), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_int_list",
			Params: []Param{selfParam, attrParam},
			Result: TypeIntList,
			Fn: func(args []Value) (Value, error) {
				return NewIntList(args[0].Context().GetIntList(args[1].Bytes())), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_double_list",
			Params: []Param{selfParam, attrParam},
			Result: TypeFloatList,
			Fn: func(args []Value) (Value, error) {
				return NewFloatList(args[0].Context().GetDoubleList(args[1].Bytes())), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_string_list",
			Params: []Param{selfParam, attrParam},
			Result: TypeStringList,
			Fn: func(args []Value) (Value, error) {
				return NewStringList(args[0].Context().GetStringList(args[1].Bytes())), nil
			},
		},
		{
			Name:   ContextNamespace + ".set_int",
			Params: []Param{selfParam, attrParam, {Name: "value", Type: TypeInt}},
			Result: TypeInt,
			Fn: func(args []Value) (Value, error) {
				return NewInt(int64(args[0].Context().SetInt(args[1].Bytes(), args[2].Int()))), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_item_count",
			Params: []Param{selfParam},
			Result: TypeInt,
			Fn: func(args []Value) (Value, error) {
				ctx := args[0].Context()
				src, ok := AsItemSource(ctx)
				if !ok {
					return NewNil(), newUnsupportedOperation(ContextNamespace+".get_item_count", ctx)
				}
				return NewInt(src.GetItemCount()), nil
			},
		},
		{
			Name:   ContextNamespace + ".get_item_attr_assigner",
			Params: []Param{selfParam, {Name: "index", Type: TypeInt}},
			Result: TypeContext,
			Fn: func(args []Value) (Value, error) {
				ctx := args[0].Context()
				src, ok := AsItemSource(ctx)
				if !ok {
					return NewNil(), newUnsupportedOperation(ContextNamespace+".get_item_attr_assigner", ctx)
				}
				assigner, err := src.GetItemAttrAssigner(args[1].Int())
				if err != nil {
					return NewNil(), err
				}
				return NewContext(assigner), nil
			},
		},
	}
}
