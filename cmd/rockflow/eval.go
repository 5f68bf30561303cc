package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mgomes/rockflow/internal/callexpr"
	"github.com/mgomes/rockflow/rockflow"
)

// contextVar names the variable bound to the loaded host context.
const contextVar = "ctx"

// session evaluates call expressions against one engine and a variable
// environment seeded with the host context.
type session struct {
	engine *rockflow.Engine
	env    map[string]rockflow.Value
}

func newSession(engine *rockflow.Engine, ctx rockflow.Context) *session {
	s := &session{engine: engine}
	s.reset(ctx)
	return s
}

func (s *session) reset(ctx rockflow.Context) {
	s.env = map[string]rockflow.Value{contextVar: rockflow.NewContext(ctx)}
}

func (s *session) evaluate(input string) (rockflow.Value, error) {
	call, err := callexpr.Parse(input)
	if err != nil {
		return rockflow.NewNil(), err
	}
	args := make([]rockflow.Value, len(call.Args))
	for i, arg := range call.Args {
		val, err := s.argValue(arg)
		if err != nil {
			return rockflow.NewNil(), err
		}
		args[i] = val
	}
	result, err := s.engine.Call(call.Name, args)
	if err != nil {
		return rockflow.NewNil(), err
	}
	if call.Assign != "" {
		s.env[call.Assign] = result
	}
	return result, nil
}

func (s *session) argValue(arg callexpr.Arg) (rockflow.Value, error) {
	switch arg.Kind {
	case callexpr.ArgInt:
		return rockflow.NewInt(arg.Int), nil
	case callexpr.ArgFloat:
		return rockflow.NewFloat(arg.Float), nil
	case callexpr.ArgString:
		return rockflow.NewBytes(arg.Str), nil
	default:
		val, ok := s.env[arg.Ident]
		if !ok {
			return rockflow.NewNil(), &callexpr.Error{Pos: arg.Pos, Msg: fmt.Sprintf("undefined variable %s", arg.Ident)}
		}
		return val, nil
	}
}

func (s *session) varNames() []string {
	return slices.Sorted(maps.Keys(s.env))
}

// checker type-checks call expressions without executing them. Assignment
// targets take the callee's declared result type.
type checker struct {
	registry *rockflow.Registry
	vars     map[string]rockflow.Type
}

func newChecker(registry *rockflow.Registry) *checker {
	return &checker{
		registry: registry,
		vars:     map[string]rockflow.Type{contextVar: rockflow.TypeContext},
	}
}

func (c *checker) check(input string) error {
	call, err := callexpr.Parse(input)
	if err != nil {
		return err
	}
	types := make([]rockflow.Type, len(call.Args))
	for i, arg := range call.Args {
		switch arg.Kind {
		case callexpr.ArgInt:
			types[i] = rockflow.TypeInt
		case callexpr.ArgFloat:
			types[i] = rockflow.TypeFloat
		case callexpr.ArgString:
			types[i] = rockflow.TypeBytes
		default:
			t, ok := c.vars[arg.Ident]
			if !ok {
				return &callexpr.Error{Pos: arg.Pos, Msg: fmt.Sprintf("undefined variable %s", arg.Ident)}
			}
			types[i] = t
		}
	}
	if err := c.registry.Check(call.Name, types); err != nil {
		return &callexpr.Error{Pos: call.Pos, Msg: err.Error()}
	}
	if call.Assign != "" {
		b, _ := c.registry.Lookup(call.Name)
		c.vars[call.Assign] = b.Result
	}
	return nil
}
