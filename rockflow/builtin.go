package rockflow

import (
	"fmt"
	"strings"
)

// BuiltinFunc is the native binding behind a registered builtin. Arguments
// arrive positionally and already match the declared parameter types.
type BuiltinFunc func(args []Value) (Value, error)

// Param declares one positional builtin argument.
type Param struct {
	Name    string
	Type    Type
	Default string
}

// Builtin is a registration entry: a unique name, its ordered parameter
// list, its result type and the native binding.
type Builtin struct {
	Name   string
	Params []Param
	Result Type
	Fn     BuiltinFunc
}

// NumInputs returns the declared arity.
func (b *Builtin) NumInputs() int { return len(b.Params) }

// ParamTypes returns the declared argument types in order.
func (b *Builtin) ParamTypes() []Type {
	types := make([]Type, len(b.Params))
	for i, p := range b.Params {
		types[i] = p.Type
	}
	return types
}

// Signature renders the builtin as name(param: type, ...) -> result.
func (b *Builtin) Signature() string {
	parts := make([]string, len(b.Params))
	for i, p := range b.Params {
		if p.Default != "" {
			parts[i] = fmt.Sprintf("%s: %s = %s", p.Name, p.Type, p.Default)
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	sig := fmt.Sprintf("%s(%s)", b.Name, strings.Join(parts, ", "))
	if b.Result != "" {
		sig += " -> " + string(b.Result)
	}
	return sig
}

func (b Builtin) clone() *Builtin {
	b.Params = append([]Param(nil), b.Params...)
	return &b
}

func validateBuiltin(b Builtin) error {
	name := strings.TrimSpace(b.Name)
	if name == "" || name != b.Name {
		return &ConfigError{Builtin: fmt.Sprintf("%q", b.Name), Err: ErrInvalidBuiltin, Detail: "name must be non-empty without surrounding space"}
	}
	for _, segment := range strings.Split(name, ".") {
		if !isIdentifier(segment) {
			return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: fmt.Sprintf("invalid name segment %q", segment)}
		}
	}
	if b.Fn == nil {
		return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: "missing native binding"}
	}
	if b.Result != "" && !b.Result.Known() {
		return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: fmt.Sprintf("unknown result type %q", b.Result)}
	}
	seen := make(map[string]struct{}, len(b.Params))
	for i, p := range b.Params {
		if !isIdentifier(p.Name) {
			return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: fmt.Sprintf("parameter %d has invalid name %q", i, p.Name)}
		}
		if _, dup := seen[p.Name]; dup {
			return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: fmt.Sprintf("duplicate parameter %q", p.Name)}
		}
		seen[p.Name] = struct{}{}
		if !p.Type.Known() {
			return &ConfigError{Builtin: name, Err: ErrInvalidBuiltin, Detail: fmt.Sprintf("parameter %q has unknown type %q", p.Name, p.Type)}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_') {
				return false
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
				return false
			}
		}
	}
	return true
}
