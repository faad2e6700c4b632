// Package engine owns every simulation collaborator and drives one tick of
// the core loop: pump completed asset fetches, drain queued messages,
// update the active zone, scan for collisions. There is no global state;
// each Engine is an isolated simulation context.
package engine

import (
	"github.com/aethersim/aether/internal/core/assets"
	"github.com/aethersim/aether/internal/core/behaviours"
	"github.com/aethersim/aether/internal/core/collision"
	"github.com/aethersim/aether/internal/core/components"
	"github.com/aethersim/aether/internal/core/input"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
	"github.com/aethersim/aether/internal/core/zone"
)

type Engine struct {
	log        log.Log
	bus        *messaging.Bus
	collision  *collision.System
	input      *input.State
	assets     assets.Provider
	components *registry.Registry[scene.Component]
	behaviours *registry.Registry[scene.Behaviour]
	services   *scene.Services
	zones      *zone.Manager

	ticks   uint64
	elapsed float64
}

// New wires a simulation context around the two external collaborators:
// the asset provider and the sound player (nil when the host has no
// audio). The built-in component and behaviour builders come registered;
// hosts add their own through Components and Behaviours.
func New(logger log.Log, provider assets.Provider, sound scene.SoundPlayer) *Engine {
	bus := messaging.NewBus(logger)
	componentReg := registry.New[scene.Component](logger, "component")
	components.RegisterBuilders(componentReg)
	behaviourReg := registry.New[scene.Behaviour](logger, "behaviour")
	behaviours.RegisterBuilders(behaviourReg)

	e := &Engine{
		log:        logger,
		bus:        bus,
		collision:  collision.NewSystem(logger, bus),
		input:      input.NewState(),
		assets:     provider,
		components: componentReg,
		behaviours: behaviourReg,
	}
	e.services = &scene.Services{
		Log:       logger,
		Bus:       bus,
		Collision: e.collision,
		Input:     e.input,
		Assets:    provider,
		Sound:     sound,
	}
	e.zones = zone.NewManager(logger, e.services, componentReg, behaviourReg)
	return e
}

func (e *Engine) Bus() *messaging.Bus       { return e.bus }
func (e *Engine) Services() *scene.Services { return e.services }
func (e *Engine) Zones() *zone.Manager      { return e.zones }

func (e *Engine) Components() *registry.Registry[scene.Component] { return e.components }
func (e *Engine) Behaviours() *registry.Registry[scene.Behaviour] { return e.behaviours }

// RegisterZone binds a zone id to its description asset.
func (e *Engine) RegisterZone(id int, assetName string) {
	e.zones.RegisterZone(id, assetName)
}

// ChangeZone swaps the active zone, deferring construction when the
// description asset is still in flight.
func (e *Engine) ChangeZone(id int) error {
	return e.zones.Change(id)
}

// Tick advances the simulation by delta seconds. Order is fixed: completed
// asset fetches are announced first, queued messages drain next, then the
// active zone updates the tree, and the collision scan runs against the
// tree's new state.
func (e *Engine) Tick(delta float64) {
	e.ticks++
	e.elapsed += delta

	for _, asset := range e.assets.Poll() {
		e.bus.Post(messaging.Message{
			Code:     assets.ReadyCode(asset.Name),
			Sender:   e,
			Context:  asset,
			Priority: messaging.PriorityHigh,
		})
	}
	e.bus.Drain()
	if z := e.zones.Active(); z != nil {
		z.Update(delta)
	}
	e.collision.Tick(delta)
}

// Render hands the opaque surface down the active zone's tree.
func (e *Engine) Render(surface scene.Surface) {
	if z := e.zones.Active(); z != nil {
		z.Render(surface)
	}
}

// FindNode resolves a node by name in the active zone, nil when no zone is
// active or no node matches.
func (e *Engine) FindNode(name string) *scene.Node {
	z := e.zones.Active()
	if z == nil || z.Scene() == nil {
		return nil
	}
	return z.Scene().FindNode(name)
}

// FindComponent resolves a component by name in the active zone.
func (e *Engine) FindComponent(name string) (scene.Component, error) {
	z := e.zones.Active()
	if z == nil || z.Scene() == nil {
		return nil, scene.ErrComponentNotFound
	}
	return z.Scene().FindComponent(name)
}

// KeyDown records a key press. Only the initial transition posts a key
// message; auto-repeat from the host collapses into one event.
func (e *Engine) KeyDown(key string) {
	if !e.input.Press(key) {
		return
	}
	e.bus.Post(messaging.Message{
		Code:     input.DownCode(key),
		Sender:   e,
		Priority: messaging.PriorityHigh,
	})
}

// KeyUp records a key release.
func (e *Engine) KeyUp(key string) {
	if !e.input.Release(key) {
		return
	}
	e.bus.Post(messaging.Message{
		Code:     input.UpCode(key),
		Sender:   e,
		Priority: messaging.PriorityHigh,
	})
}
