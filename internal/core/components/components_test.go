package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aethersim/aether/internal/core/collision"
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

func newComponentRegistry() *registry.Registry[scene.Component] {
	reg := registry.New[scene.Component](log.Nop(), "component")
	RegisterBuilders(reg)
	return reg
}

func TestSpriteBuilder(t *testing.T) {
	reg := newComponentRegistry()
	c, err := reg.Extract(registry.Raw{
		"type":         "sprite",
		"name":         "background",
		"materialName": "bg",
		"width":        800,
		"height":       600,
		"origin":       map[string]any{"x": 0.5, "y": 0.5},
	})
	require.NoError(t, err)
	sprite, ok := c.(*Sprite)
	require.True(t, ok)
	require.Equal(t, "background", sprite.Name())
	require.Equal(t, "bg", sprite.MaterialName())
	w, h := sprite.Size()
	require.Equal(t, 800.0, w)
	require.Equal(t, 600.0, h)
}

func TestSpriteBuilderRequiresMaterial(t *testing.T) {
	reg := newComponentRegistry()
	_, err := reg.Extract(registry.Raw{"type": "sprite", "name": "x"})
	require.ErrorIs(t, err, registry.ErrMissingField)
}

func TestAnimatedSpriteBuilderAndPlayback(t *testing.T) {
	reg := newComponentRegistry()
	c, err := reg.Extract(registry.Raw{
		"type":          "animatedSprite",
		"name":          "bird",
		"materialName":  "bird-sheet",
		"frameWidth":    32,
		"frameHeight":   32,
		"frameCount":    3,
		"frameSequence": []any{0, 1, 2, 1},
		"frameRate":     10,
		"autoPlay":      true,
	})
	require.NoError(t, err)
	anim, ok := c.(*AnimatedSprite)
	require.True(t, ok)

	require.NoError(t, anim.Load())
	require.True(t, anim.Playing())
	require.Equal(t, 0, anim.Frame())

	anim.Update(0.1) // one frame at 10 fps
	require.Equal(t, 1, anim.Frame())
	anim.Update(0.1)
	require.Equal(t, 2, anim.Frame())
	anim.Update(0.1) // sequence wraps back through its tail
	require.Equal(t, 1, anim.Frame())
	anim.Update(0.1)
	require.Equal(t, 0, anim.Frame())

	anim.Stop()
	anim.Update(1)
	require.Equal(t, 0, anim.Frame())

	anim.Restart()
	require.True(t, anim.Playing())
	require.Equal(t, 0, anim.Frame())
}

func TestAnimatedSpriteBuilderRequiresFrames(t *testing.T) {
	reg := newComponentRegistry()
	_, err := reg.Extract(registry.Raw{
		"type":         "animatedSprite",
		"name":         "bird",
		"materialName": "bird-sheet",
	})
	require.ErrorIs(t, err, registry.ErrMissingField)
}

func TestCollisionBuilderRectangle(t *testing.T) {
	reg := newComponentRegistry()
	c, err := reg.Extract(registry.Raw{
		"type":   "collision",
		"name":   "groundCollision",
		"static": true,
		"shape": map[string]any{
			"type":   "rectangle",
			"width":  100,
			"height": 10,
		},
	})
	require.NoError(t, err)
	col, ok := c.(*Collision)
	require.True(t, ok)
	require.True(t, col.Static())
	require.Equal(t, collision.ShapeRectangle, col.Shape().Kind)
}

func TestCollisionBuilderCircle(t *testing.T) {
	reg := newComponentRegistry()
	c, err := reg.Extract(registry.Raw{
		"type": "collision",
		"name": "birdCollision",
		"shape": map[string]any{
			"type":     "circle",
			"radius":   16,
			"position": map[string]any{"x": 1, "y": 2},
		},
	})
	require.NoError(t, err)
	col := c.(*Collision)
	require.Equal(t, collision.ShapeCircle, col.Shape().Kind)
	require.Equal(t, 16.0, col.Shape().Radius)
}

func TestCollisionBuilderRejectsUnknownShape(t *testing.T) {
	reg := newComponentRegistry()
	_, err := reg.Extract(registry.Raw{
		"type":  "collision",
		"name":  "bad",
		"shape": map[string]any{"type": "triangle"},
	})
	require.ErrorIs(t, err, registry.ErrUnknownType)
}

func TestCollisionComponentLifecycle(t *testing.T) {
	bus := messaging.NewBus(log.Nop())
	system := collision.NewSystem(log.Nop(), bus)
	services := &scene.Services{Log: log.Nop(), Bus: bus, Collision: system}

	root := scene.NewNode(1, "root")
	col := NewCollision("probe", collision.NewCircle(geom.Vector2{}, geom.Vector2{X: 0.5, Y: 0.5}, 4), false)
	root.AddComponent(col)
	s := scene.NewScene(root, services)

	require.NoError(t, s.Load())

	// The shape follows the owner's world position.
	root.Transform.Position = geom.Vector3{X: 7, Y: 3}
	s.Update(0.016)
	require.Equal(t, geom.Vector2{X: 7, Y: 3}, col.Shape().Position)

	s.Unload()
	system.Tick(1) // no colliders left; must not panic
}

func TestCollisionComponentLoadWithoutSystem(t *testing.T) {
	root := scene.NewNode(1, "root")
	col := NewCollision("probe", collision.NewCircle(geom.Vector2{}, geom.Vector2{X: 0.5, Y: 0.5}, 4), false)
	root.AddComponent(col)
	scene.NewScene(root, &scene.Services{Log: log.Nop()})
	err := root.Load()
	require.ErrorIs(t, err, ErrNoCollisionSystem)
}
