package components

import (
	"errors"
	"fmt"

	"github.com/aethersim/aether/internal/core/collision"
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// ErrNoCollisionSystem means the component loaded outside a scene wired to
// an engine context.
var ErrNoCollisionSystem = errors.New("no collision system available")

// Listener receives collision lifecycle callbacks directly, as an
// alternative to subscribing to the bus messages the collision engine
// posts.
type Listener interface {
	CollisionEntry(self *Collision, other collision.Collider)
	CollisionUpdate(self *Collision, other collision.Collider)
	CollisionExit(self *Collision, other collision.Collider)
}

// Collision owns one shape and keeps it aligned to the owner's world
// position every tick. It registers with the collision engine on Load and
// unregisters on Unload.
type Collision struct {
	scene.BaseComponent
	shape    *collision.Shape
	static   bool
	base     geom.Vector2
	listener Listener
}

var _ collision.Collider = (*Collision)(nil)

func NewCollision(name string, shape *collision.Shape, static bool) *Collision {
	return &Collision{
		BaseComponent: scene.NewBaseComponent(name),
		shape:         shape,
		static:        static,
		base:          shape.Position,
	}
}

func (c *Collision) SetListener(l Listener) { c.listener = l }

func (c *Collision) ColliderName() string    { return c.Name() }
func (c *Collision) Shape() *collision.Shape { return c.shape }
func (c *Collision) Static() bool            { return c.static }

func (c *Collision) OnCollisionEntry(other collision.Collider) {
	if svc := c.Services(); svc != nil {
		svc.Log.Debug("collision entry",
			log.String("collider", c.Name()),
			log.String("other", other.ColliderName()))
	}
	if c.listener != nil {
		c.listener.CollisionEntry(c, other)
	}
}

func (c *Collision) OnCollisionUpdate(other collision.Collider) {
	if c.listener != nil {
		c.listener.CollisionUpdate(c, other)
	}
}

func (c *Collision) OnCollisionExit(other collision.Collider) {
	if svc := c.Services(); svc != nil {
		svc.Log.Debug("collision exit",
			log.String("collider", c.Name()),
			log.String("other", other.ColliderName()))
	}
	if c.listener != nil {
		c.listener.CollisionExit(c, other)
	}
}

func (c *Collision) Load() error {
	svc := c.Services()
	if svc == nil || svc.Collision == nil {
		return fmt.Errorf("collision component %q: %w", c.Name(), ErrNoCollisionSystem)
	}
	svc.Collision.Register(c)
	return nil
}

func (c *Collision) Unload() {
	if svc := c.Services(); svc != nil && svc.Collision != nil {
		svc.Collision.Unregister(c)
	}
}

// Update re-aligns the shape to the owner's current world position, keeping
// the configured local position and the shape's origin offset.
func (c *Collision) Update(delta float64) {
	world := c.Owner().World().Translation().XY()
	c.shape.Position = world.Add(c.base).Add(c.shape.Offset())
}

// CollisionBuilder decodes a collision record: a required name and nested
// shape description ({type: rectangle|circle} with shape-specific extents),
// plus an optional static flag.
func CollisionBuilder(cfg registry.Raw) (scene.Component, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	shapeCfg, err := cfg.RequireChild("shape")
	if err != nil {
		return nil, err
	}
	shape, err := buildShape(shapeCfg)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	static, _ := cfg.Bool("static")
	return NewCollision(name, shape, static), nil
}

func buildShape(cfg registry.Raw) (*collision.Shape, error) {
	kind, ok := cfg.String("type")
	if !ok {
		return nil, registry.ErrMissingType
	}
	var pos geom.Vector2
	if v, ok := cfg.Vector("position"); ok {
		pos = v.XY()
	}
	switch kind {
	case "rectangle":
		origin := geom.Vector2{}
		if v, ok := cfg.Vector("origin"); ok {
			origin = v.XY()
		}
		width, err := cfg.RequireFloat("width")
		if err != nil {
			return nil, err
		}
		height, err := cfg.RequireFloat("height")
		if err != nil {
			return nil, err
		}
		return collision.NewRectangle(pos, origin, width, height), nil
	case "circle":
		origin := geom.Vector2{X: 0.5, Y: 0.5}
		if v, ok := cfg.Vector("origin"); ok {
			origin = v.XY()
		}
		radius, err := cfg.RequireFloat("radius")
		if err != nil {
			return nil, err
		}
		return collision.NewCircle(pos, origin, radius), nil
	default:
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownType, kind)
	}
}
