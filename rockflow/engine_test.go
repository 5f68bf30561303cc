package rockflow

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineRegistersAndSeals(t *testing.T) {
	engine, err := NewEngine(Config{})
	require.NoError(t, err)

	assert.True(t, engine.Registry().Sealed())
	assert.Equal(t, 9, engine.Registry().Len())
	assert.Equal(t, "builtins=9 sealed=true", engine.ConfigSummary())

	err = engine.Registry().Register(echoBuiltin("late.add"))
	assert.ErrorIs(t, err, ErrRegistrySealed)
}

func TestNewEngineHostBuiltins(t *testing.T) {
	engine := MustNewEngine(Config{Builtins: []Builtin{echoBuiltin("host.echo")}})

	require.NoError(t, engine.Check("host.echo", []Type{TypeInt}))
	result, err := engine.Call("host.echo", []Value{NewInt(7)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Int())
}

func TestNewEngineAbortsOnDuplicateHostBuiltin(t *testing.T) {
	_, err := NewEngine(Config{Builtins: []Builtin{
		echoBuiltin("rockflow_context.get_int"),
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateBuiltin))

	assert.Panics(t, func() {
		MustNewEngine(Config{Builtins: []Builtin{echoBuiltin("a.b"), echoBuiltin("a.b")}})
	})
}

func TestEngineCallContext(t *testing.T) {
	engine := MustNewEngine(Config{})
	ctx := MustNewMapContext(map[string]any{"name": "alice", "weights": []any{0.1, 0.2}})

	name, err := engine.CallContext(ctx, "get_string", NewBytes("name"), NewBytes(""))
	require.NoError(t, err)
	assert.Equal(t, "alice", name.Bytes())

	weights, err := engine.CallContext(ctx, "get_double_list", NewBytes("weights"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, weights.FloatList())

	_, err = engine.CallContext(ctx, "get_item_count")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = engine.CallContext(ctx, "get_everything")
	assert.ErrorIs(t, err, ErrUnknownBuiltin)
}

func TestEngineLogsStartup(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	MustNewEngine(Config{Logger: &logger})

	assert.Contains(t, buf.String(), "rockflow engine ready")
	assert.NotContains(t, buf.String(), "registered builtin")
}
