package rockflow

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Config controls engine start-up.
type Config struct {
	// Builtins are host-supplied entries registered after the context
	// accessors. A name collision aborts NewEngine.
	Builtins []Builtin
	// Logger receives registration and dispatch diagnostics. The zero value
	// discards output.
	Logger *zerolog.Logger
}

// Engine owns a sealed builtin table populated by an explicit start-up step.
// Hosts construct one before compiling any script that references the
// rockflow_context builtins.
type Engine struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewEngine registers the context builtins and any host builtins in order,
// then seals the table. Any registration error aborts construction.
func NewEngine(cfg Config) (*Engine, error) {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	registry := NewRegistry(WithLogger(logger))
	if err := RegisterContextBuiltins(registry); err != nil {
		return nil, fmt.Errorf("rockflow: context builtins: %w", err)
	}
	for _, b := range cfg.Builtins {
		if err := registry.Register(b); err != nil {
			return nil, err
		}
	}
	registry.Seal()
	logger.Info().Int("builtins", registry.Len()).Msg("rockflow engine ready")
	return &Engine{registry: registry, logger: logger}, nil
}

// MustNewEngine constructs an Engine or panics if registration fails.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Registry exposes the sealed builtin table for signature lookups.
func (e *Engine) Registry() *Registry { return e.registry }

// Check type-checks a call site against the registered signature.
func (e *Engine) Check(name string, args []Type) error {
	return e.registry.Check(name, args)
}

// Call invokes a registered builtin with positional arguments.
func (e *Engine) Call(name string, args []Value) (Value, error) {
	return e.registry.Call(name, args)
}

// CallContext invokes a rockflow_context accessor by short name with ctx
// as the receiver, e.g. CallContext(ctx, "get_int", NewBytes("age"), NewInt(-1)).
func (e *Engine) CallContext(ctx Context, method string, args ...Value) (Value, error) {
	full := make([]Value, 0, len(args)+1)
	full = append(full, NewContext(ctx))
	full = append(full, args...)
	return e.registry.Call(ContextNamespace+"."+method, full)
}

// ConfigSummary describes the registered table.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("builtins=%d sealed=%t", e.registry.Len(), e.registry.Sealed())
}
