package scene

import "fmt"

// Scene is the root-rooted node tree belonging to one zone, plus the
// services every node in the tree shares.
type Scene struct {
	root     *Node
	services *Services
}

func NewScene(root *Node, services *Services) *Scene {
	s := &Scene{root: root, services: services}
	root.setScene(s)
	return s
}

func (s *Scene) Root() *Node         { return s.root }
func (s *Scene) Services() *Services { return s.services }

// Load runs pass one of the two-phase initialization across the whole tree.
func (s *Scene) Load() error {
	return s.root.Load()
}

// UpdateReady runs pass two. Callers must complete Load over the entire
// tree first; cross-reference lookups here assume sibling subtrees exist.
func (s *Scene) UpdateReady() error {
	return s.root.UpdateReady()
}

func (s *Scene) Update(delta float64) {
	s.root.Update(delta)
}

func (s *Scene) Render(surface Surface) {
	s.root.Render(surface)
}

func (s *Scene) Unload() {
	s.root.Unload()
}

// FindNode searches the whole tree depth-first by exact name.
func (s *Scene) FindNode(name string) *Node {
	return s.root.FindNode(name)
}

// FindComponent resolves a component by name anywhere in the tree. Failing
// to find one is a lookup error: it means content references a component
// that was never built.
func (s *Scene) FindComponent(name string) (Component, error) {
	if c := findComponent(s.root, name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
}

func findComponent(n *Node, name string) Component {
	if c := n.Component(name); c != nil {
		return c
	}
	for _, child := range n.Children() {
		if c := findComponent(child, name); c != nil {
			return c
		}
	}
	return nil
}
