package scripting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/observability/log"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(log.Nop())
	t.Cleanup(e.Close)
	return e
}

func TestUpdateMovesPosition(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.LoadSource(`
function update(dt, pos)
  return { x = pos.x + dt * 2, y = pos.y - 1, z = pos.z }
end
`))

	pos, err := e.Update(0.5, geom.Vector3{X: 1, Y: 3, Z: 7})
	require.NoError(t, err)
	require.Equal(t, geom.Vector3{X: 2, Y: 2, Z: 7}, pos)
}

func TestUpdateWithoutReturnKeepsPosition(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.LoadSource(`function update(dt, pos) end`))

	pos, err := e.Update(1, geom.Vector3{X: 4})
	require.NoError(t, err)
	require.Equal(t, geom.Vector3{X: 4}, pos)
}

func TestPartialReturnKeepsOtherAxes(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.LoadSource(`
function update(dt, pos)
  return { y = 9 }
end
`))

	pos, err := e.Update(1, geom.Vector3{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.Equal(t, geom.Vector3{X: 1, Y: 9, Z: 3}, pos)
}

func TestLoadSourceRequiresUpdate(t *testing.T) {
	e := newEngine(t)
	err := e.LoadSource(`local x = 1`)
	require.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestLoadSourceSyntaxError(t *testing.T) {
	e := newEngine(t)
	require.Error(t, e.LoadSource(`function update(`))
}

func TestRuntimeErrorSurfaces(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.LoadSource(`
function update(dt, pos)
  error("boom")
end
`))

	_, err := e.Update(1, geom.Vector3{})
	require.Error(t, err)
}
