package zone

import (
	"errors"
	"fmt"

	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

var (
	// ErrNoObjects means the description carries no object tree; an empty
	// zone is a content error, not a valid zone.
	ErrNoObjects = errors.New("zone description has no objects")
	// ErrNotInitialized means Load ran before Initialize built the tree.
	ErrNotInitialized = errors.New("zone not initialized")
)

// State is the zone lifecycle. Transitions are one-way; there is no
// teardown state, the manager unloads a zone by dropping it.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateUpdating
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateUpdating:
		return "updating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Zone owns one scene built from a description. Update and Render stay
// no-ops until Load completes.
type Zone struct {
	log        log.Log
	services   *scene.Services
	components *registry.Registry[scene.Component]
	behaviours *registry.Registry[scene.Behaviour]

	id         int
	name       string
	desc       string
	scene      *scene.Scene
	state      State
	nextNodeID uint64
}

func New(logger log.Log, services *scene.Services,
	components *registry.Registry[scene.Component],
	behaviours *registry.Registry[scene.Behaviour]) *Zone {
	return &Zone{
		log:        logger,
		services:   services,
		components: components,
		behaviours: behaviours,
	}
}

func (z *Zone) ID() int             { return z.id }
func (z *Zone) Name() string        { return z.name }
func (z *Zone) State() State        { return z.state }
func (z *Zone) Scene() *scene.Scene { return z.scene }

// Initialize builds the node tree from desc, bottom-up: a child's own
// subtree is fully built and attached before the child joins its parent.
// Node ids are zone-scoped and monotonically assigned in construction
// order; the synthetic root takes id 0.
func (z *Zone) Initialize(desc *Description) error {
	if len(desc.Objects) == 0 {
		return fmt.Errorf("zone %q: %w", desc.Name, ErrNoObjects)
	}
	z.id = desc.ID
	z.name = desc.Name
	z.desc = desc.Description

	root := scene.NewNode(0, desc.Name)
	for i := range desc.Objects {
		node, err := z.buildNode(&desc.Objects[i])
		if err != nil {
			return fmt.Errorf("zone %q: %w", desc.Name, err)
		}
		root.AddChild(node)
	}
	z.scene = scene.NewScene(root, z.services)
	z.log.Debug("zone initialized",
		log.Int("id", z.id), log.String("zone", z.name))
	return nil
}

func (z *Zone) buildNode(desc *ObjectDesc) (*scene.Node, error) {
	z.nextNodeID++
	node := scene.NewNode(z.nextNodeID, desc.Name)
	desc.Transform.apply(&node.Transform)

	for _, cfg := range desc.Components {
		component, err := z.components.Extract(cfg)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", desc.Name, err)
		}
		node.AddComponent(component)
	}
	for _, cfg := range desc.Behaviours {
		behaviour, err := z.behaviours.Extract(cfg)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", desc.Name, err)
		}
		node.AddBehaviour(behaviour)
	}
	for i := range desc.Children {
		child, err := z.buildNode(&desc.Children[i])
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

// Load runs the two initialization passes over the whole tree: Load
// everywhere first, then UpdateReady, because ready-time lookups resolve
// into sibling subtrees. On success the zone starts updating.
func (z *Zone) Load() error {
	if z.scene == nil {
		return fmt.Errorf("zone %q: %w", z.name, ErrNotInitialized)
	}
	z.state = StateLoading
	if err := z.scene.Load(); err != nil {
		return fmt.Errorf("zone %q: %w", z.name, err)
	}
	if err := z.scene.UpdateReady(); err != nil {
		return fmt.Errorf("zone %q: %w", z.name, err)
	}
	z.state = StateUpdating
	z.log.Info("zone loaded", log.Int("id", z.id), log.String("zone", z.name))
	return nil
}

func (z *Zone) Update(delta float64) {
	if z.state != StateUpdating {
		return
	}
	z.scene.Update(delta)
}

func (z *Zone) Render(surface scene.Surface) {
	if z.state != StateUpdating {
		return
	}
	z.scene.Render(surface)
}

// Unload tears the tree down so owned components release what they hold,
// collision registrations included.
func (z *Zone) Unload() {
	if z.scene != nil {
		z.scene.Unload()
	}
}
