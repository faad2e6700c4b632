package engine

import "github.com/aethersim/aether/internal/core/scene"

// Snapshot is a point-in-time view of the simulation for inspection
// tooling. It copies plain values out of the tree; holding one does not
// keep the tree alive or observe later ticks.
type Snapshot struct {
	Ticks           uint64        `json:"ticks"`
	Elapsed         float64       `json:"elapsed"`
	PendingMessages int           `json:"pendingMessages"`
	ActivePairs     int           `json:"activePairs"`
	Zone            *ZoneSnapshot `json:"zone,omitempty"`
}

type ZoneSnapshot struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	State string       `json:"state"`
	Root  NodeSnapshot `json:"root"`
}

type NodeSnapshot struct {
	ID         uint64         `json:"id"`
	Name       string         `json:"name"`
	Position   [3]float64     `json:"position"`
	Rotation   [3]float64     `json:"rotation"`
	Components []string       `json:"components,omitempty"`
	Behaviours []string       `json:"behaviours,omitempty"`
	Children   []NodeSnapshot `json:"children,omitempty"`
}

// Snapshot captures the current simulation state. Call it from the
// simulation goroutine only; the engine is not safe for concurrent reads.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Ticks:           e.ticks,
		Elapsed:         e.elapsed,
		PendingMessages: e.bus.Pending(),
		ActivePairs:     e.collision.ActivePairs(),
	}
	if z := e.zones.Active(); z != nil && z.Scene() != nil {
		snap.Zone = &ZoneSnapshot{
			ID:    z.ID(),
			Name:  z.Name(),
			State: z.State().String(),
			Root:  snapshotNode(z.Scene().Root()),
		}
	}
	return snap
}

func snapshotNode(n *scene.Node) NodeSnapshot {
	pos := n.Transform.Position
	rot := n.Transform.Rotation
	snap := NodeSnapshot{
		ID:       n.ID(),
		Name:     n.Name(),
		Position: [3]float64{pos.X, pos.Y, pos.Z},
		Rotation: [3]float64{rot.X, rot.Y, rot.Z},
	}
	for _, c := range n.Components() {
		snap.Components = append(snap.Components, c.Name())
	}
	for _, b := range n.Behaviours() {
		snap.Behaviours = append(snap.Behaviours, b.Name())
	}
	for _, child := range n.Children() {
		snap.Children = append(snap.Children, snapshotNode(child))
	}
	return snap
}
