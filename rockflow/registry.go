package rockflow

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// Registry is the builtin table keyed by operation name. It is populated
// during start-up and sealed before compiled code may reference it. Reads
// before Seal share the registration lock; after Seal the table is
// immutable and reads take no lock.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	entries map[string]*Builtin
	logger  zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger routes registry diagnostics to logger.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns an empty, unsealed builtin table.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]*Builtin),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds b to the table. A second registration under an existing
// name is rejected with ErrDuplicateBuiltin; the first entry is kept.
func (r *Registry) Register(b Builtin) error {
	if err := validateBuiltin(b); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return &ConfigError{Builtin: b.Name, Err: ErrRegistrySealed}
	}
	if _, exists := r.entries[b.Name]; exists {
		return &ConfigError{Builtin: b.Name, Err: ErrDuplicateBuiltin}
	}
	r.entries[b.Name] = b.clone()
	r.logger.Debug().Str("builtin", b.Name).Int("inputs", len(b.Params)).Msg("registered builtin")
	return nil
}

// MustRegister registers b or panics.
func (r *Registry) MustRegister(b Builtin) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Seal makes the table read-only. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Swap(true) {
		return
	}
	r.logger.Debug().Int("builtins", len(r.entries)).Msg("builtin registry sealed")
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed.Load() }

// read guards a table read. Once sealed the entries never change, so the
// lock is only taken while registration may still be in progress.
func (r *Registry) read() (unlock func()) {
	if r.sealed.Load() {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// Lookup returns the entry registered under name. Callers must not modify
// the returned Builtin.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	defer r.read()()
	b, ok := r.entries[name]
	return b, ok
}

// Len returns the number of registered builtins.
func (r *Registry) Len() int {
	defer r.read()()
	return len(r.entries)
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	defer r.read()()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the builtins whose names match a glob pattern, sorted by
// name. '.' separates namespace segments, so "rockflow_context.*" matches
// every context accessor.
func (r *Registry) Match(pattern string) ([]*Builtin, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, fmt.Errorf("rockflow: invalid builtin pattern %q: %w", pattern, err)
	}
	var out []*Builtin
	for _, name := range r.Names() {
		if !g.Match(name) {
			continue
		}
		if b, ok := r.Lookup(name); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// Check validates a call site's static argument types against the declared
// signature: arity first, then each positional type.
func (r *Registry) Check(name string, args []Type) error {
	b, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	if len(args) != len(b.Params) {
		return arityError(b, len(args))
	}
	for i, p := range b.Params {
		if args[i] != p.Type {
			return &CallError{
				Builtin: name,
				Arg:     i,
				Message: fmt.Sprintf("%s expects %s, got %s", p.Name, p.Type, displayType(args[i])),
			}
		}
	}
	return nil
}

// Call dispatches a positional call to the native binding. Values are passed
// through as-is; a value whose kind does not match the declared type is
// reported as a CallError instead of reaching the binding.
func (r *Registry) Call(name string, args []Value) (Value, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return NewNil(), fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	if len(args) != len(b.Params) {
		return NewNil(), arityError(b, len(args))
	}
	for i, p := range b.Params {
		if !p.Type.Accepts(args[i].Kind()) {
			return NewNil(), &CallError{
				Builtin: name,
				Arg:     i,
				Message: fmt.Sprintf("%s expects %s, got %s", p.Name, p.Type, displayType(TypeOf(args[i]))),
			}
		}
	}
	result, err := b.Fn(args)
	if err != nil {
		r.logger.Debug().Str("builtin", name).Err(err).Msg("builtin call failed")
		return NewNil(), err
	}
	return result, nil
}

func arityError(b *Builtin, got int) *CallError {
	return &CallError{
		Builtin: b.Name,
		Arg:     -1,
		Message: fmt.Sprintf("expects %d argument(s), got %d", len(b.Params), got),
	}
}

func displayType(t Type) string {
	if t == "" {
		return "nil"
	}
	return string(t)
}
