// Package scene implements the node tree at the heart of the simulation:
// nodes own transforms, components and behaviours, and dispatch the
// load / updateReady / update / render passes depth-first.
package scene

import (
	"errors"

	"github.com/aethersim/aether/internal/core/assets"
	"github.com/aethersim/aether/internal/core/collision"
	"github.com/aethersim/aether/internal/core/input"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
)

// ErrComponentNotFound is the lookup failure for named component
// resolution. It indicates a content/programming mismatch and is never
// retried.
var ErrComponentNotFound = errors.New("component not found")

// Surface is the opaque render target handed down the tree. The core never
// interprets it; components assert the narrow drawing contract they need.
type Surface any

// SoundPlayer is the boundary to the audio collaborator.
type SoundPlayer interface {
	Play(sound string)
}

// Services exposes the engine-owned collaborators a node tree can reach
// through its scene. One Services value per engine context; never ambient
// global state.
type Services struct {
	Log       log.Log
	Bus       *messaging.Bus
	Collision *collision.System
	Input     *input.State
	Assets    assets.Provider
	Sound     SoundPlayer
}

// Component is a node-owned, render-capable extension. Lifecycle: Load once
// when the tree loads, UpdateReady once after the entire tree finished
// loading, Update every tick, Render every frame, Unload when the node is
// torn down.
type Component interface {
	Name() string
	SetOwner(owner *Node)
	Load() error
	Unload()
	UpdateReady() error
	Update(delta float64)
	Render(surface Surface)
}

// Behaviour is a node-owned, non-rendering extension. Behaviours have no
// load phase; they join the tree at UpdateReady and mutate their owner's
// transform or react to messages during Update.
type Behaviour interface {
	Name() string
	SetOwner(owner *Node)
	UpdateReady() error
	Update(delta float64)
}

// BaseComponent supplies the boilerplate half of Component. Concrete
// components embed it and override what they need.
type BaseComponent struct {
	name  string
	owner *Node
}

func NewBaseComponent(name string) BaseComponent {
	return BaseComponent{name: name}
}

func (c *BaseComponent) Name() string           { return c.name }
func (c *BaseComponent) SetOwner(owner *Node)   { c.owner = owner }
func (c *BaseComponent) Owner() *Node           { return c.owner }
func (c *BaseComponent) Load() error            { return nil }
func (c *BaseComponent) Unload()                {}
func (c *BaseComponent) UpdateReady() error     { return nil }
func (c *BaseComponent) Update(delta float64)   {}
func (c *BaseComponent) Render(surface Surface) {}

// Services resolves the engine services through the owning scene; nil until
// the node joined a scene.
func (c *BaseComponent) Services() *Services {
	if c.owner == nil || c.owner.Scene() == nil {
		return nil
	}
	return c.owner.Scene().Services()
}

// BaseBehaviour supplies the boilerplate half of Behaviour.
type BaseBehaviour struct {
	name  string
	owner *Node
}

func NewBaseBehaviour(name string) BaseBehaviour {
	return BaseBehaviour{name: name}
}

func (b *BaseBehaviour) Name() string         { return b.name }
func (b *BaseBehaviour) SetOwner(owner *Node) { b.owner = owner }
func (b *BaseBehaviour) Owner() *Node         { return b.owner }
func (b *BaseBehaviour) UpdateReady() error   { return nil }
func (b *BaseBehaviour) Update(delta float64) {}

func (b *BaseBehaviour) Services() *Services {
	if b.owner == nil || b.owner.Scene() == nil {
		return nil
	}
	return b.owner.Scene().Services()
}
