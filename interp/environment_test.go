package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineThenGet(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Define("a", 1.0))
	v, ok := env.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestRedefineInSameTableIsError(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Define("a", 1.0))
	assert.Error(t, env.Define("a", 2.0))
}

func TestBlockDepthIsBalancedAfterPushPop(t *testing.T) {
	env := NewEnvironment()
	frames, tables := env.Depth()
	env.PushBlock()
	env.Define("x", 1.0)
	env.PopBlock()
	f2, t2 := env.Depth()
	assert.Equal(t, frames, f2)
	assert.Equal(t, tables, t2)
}

func TestShadowedNameInvisibleAfterBlockEnds(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Define("x", 1.0))
	env.PushBlock()
	require.NoError(t, env.Define("x", 2.0))
	v, _ := env.Get("x")
	assert.Equal(t, 2.0, v)
	env.PopBlock()
	v, _ = env.Get("x")
	assert.Equal(t, 1.0, v)
}

func TestCallFrameIsolatesGlobalMutation(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Define("g", 1.0))

	env.PushCall()
	v, ok := env.Get("g")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	require.NoError(t, env.Assign("g", 99.0))
	v, _ = env.Get("g")
	assert.Equal(t, 99.0, v)
	env.PopCall()

	v, _ = env.Get("g")
	assert.Equal(t, 1.0, v, "mutation inside the call frame must not leak back to the caller")
}

func TestCallDepthIsBalancedAfterPushPop(t *testing.T) {
	env := NewEnvironment()
	frames, _ := env.Depth()
	env.PushCall()
	env.PopCall()
	f2, _ := env.Depth()
	assert.Equal(t, frames, f2)
}

func TestAssignToUndefinedNameIsError(t *testing.T) {
	env := NewEnvironment()
	assert.Error(t, env.Assign("missing", 1.0))
}
