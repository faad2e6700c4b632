package scene

import (
	"fmt"

	"github.com/aethersim/aether/internal/core/geom"
)

// Node is one element of the scene tree. It owns its children, components
// and behaviours; the parent pointer is a non-owning back-reference valid
// only after attachment. The tree is acyclic: a node has at most one parent.
type Node struct {
	id         uint64
	name       string
	Transform  geom.Transform
	parent     *Node
	children   []*Node
	components []Component
	behaviours []Behaviour
	local      geom.Matrix4
	world      geom.Matrix4
	loaded     bool
	scene      *Scene
}

func NewNode(id uint64, name string) *Node {
	return &Node{
		id:        id,
		name:      name,
		Transform: geom.NewTransform(),
		local:     geom.Identity(),
		world:     geom.Identity(),
	}
}

func (n *Node) ID() uint64        { return n.id }
func (n *Node) Name() string      { return n.name }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Scene() *Scene     { return n.scene }
func (n *Node) Loaded() bool      { return n.loaded }

// Local returns the local matrix as of the last update.
func (n *Node) Local() geom.Matrix4 { return n.local }

// World returns the world matrix as of the last update: local for a root,
// parent.world x local otherwise. Recomputed every tick, never cached across
// ticks.
func (n *Node) World() geom.Matrix4 { return n.world }

// AddChild attaches child, establishing the parent back-reference and
// propagating the owning scene through the child's subtree so components
// constructed before attachment still reach the scene.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
	child.setScene(n.scene)
}

// RemoveChild detaches child if present and clears its parent link. No-op
// otherwise.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) AddComponent(c Component) {
	c.SetOwner(n)
	n.components = append(n.components, c)
}

func (n *Node) AddBehaviour(b Behaviour) {
	b.SetOwner(n)
	n.behaviours = append(n.behaviours, b)
}

func (n *Node) Components() []Component { return n.components }
func (n *Node) Behaviours() []Behaviour { return n.behaviours }

// Component returns this node's own component with the given name, or nil.
func (n *Node) Component(name string) Component {
	for _, c := range n.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// FindNode searches the subtree rooted at n depth-first for an exact name
// match. Every branch is examined, not just the first child at each level.
func (n *Node) FindNode(name string) *Node {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.FindNode(name); found != nil {
			return found
		}
	}
	return nil
}

// Load marks the node loaded and loads every owned component in attachment
// order, then recurses into children. Behaviours have no load phase.
func (n *Node) Load() error {
	n.loaded = true
	for _, c := range n.components {
		if err := c.Load(); err != nil {
			return fmt.Errorf("load component %q on node %q: %w", c.Name(), n.name, err)
		}
	}
	for _, child := range n.children {
		if err := child.Load(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateReady runs the second initialization pass. It must only be invoked
// once the entire tree completed Load, because implementations resolve
// named references into sibling subtrees here.
func (n *Node) UpdateReady() error {
	for _, c := range n.components {
		if err := c.UpdateReady(); err != nil {
			return fmt.Errorf("ready component %q on node %q: %w", c.Name(), n.name, err)
		}
	}
	for _, b := range n.behaviours {
		if err := b.UpdateReady(); err != nil {
			return fmt.Errorf("ready behaviour %q on node %q: %w", b.Name(), n.name, err)
		}
	}
	for _, child := range n.children {
		if err := child.UpdateReady(); err != nil {
			return err
		}
	}
	return nil
}

// Unload tears the subtree down: components first, then children.
func (n *Node) Unload() {
	for _, c := range n.components {
		c.Unload()
	}
	for _, child := range n.children {
		child.Unload()
	}
	n.loaded = false
}

// Update recomputes the local matrix from the current transform and the
// world matrix from the parent, then updates components, behaviours and
// children, in that fixed order, every tick.
func (n *Node) Update(delta float64) {
	n.local = n.Transform.Matrix()
	if n.parent != nil {
		n.world = n.parent.world.Mul(n.local)
	} else {
		n.world = n.local
	}
	for _, c := range n.components {
		c.Update(delta)
	}
	for _, b := range n.behaviours {
		b.Update(delta)
	}
	for _, child := range n.children {
		child.Update(delta)
	}
}

// Render delegates to every owned component, then recurses into children.
// Behaviours never render.
func (n *Node) Render(surface Surface) {
	for _, c := range n.components {
		c.Render(surface)
	}
	for _, child := range n.children {
		child.Render(surface)
	}
}

func (n *Node) setScene(s *Scene) {
	n.scene = s
	for _, child := range n.children {
		child.setScene(s)
	}
}
