package collision

import (
	"testing"

	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
)

type stubCollider struct {
	name    string
	shape   *Shape
	static  bool
	entries int
	updates int
	exits   int
}

func (c *stubCollider) ColliderName() string       { return c.name }
func (c *stubCollider) Shape() *Shape              { return c.shape }
func (c *stubCollider) Static() bool               { return c.static }
func (c *stubCollider) OnCollisionEntry(Collider)  { c.entries++ }
func (c *stubCollider) OnCollisionUpdate(Collider) { c.updates++ }
func (c *stubCollider) OnCollisionExit(Collider)   { c.exits++ }

type codeCounter struct {
	counts map[string]int
}

func (c *codeCounter) OnMessage(msg messaging.Message) {
	c.counts[msg.Code]++
}

func newSystem() (*System, *messaging.Bus) {
	bus := messaging.NewBus(log.Nop())
	return NewSystem(log.Nop(), bus), bus
}

func TestCollisionLifecycle(t *testing.T) {
	sys, bus := newSystem()
	a := &stubCollider{name: "player", shape: rect(0, 0, 10, 10)}
	b := &stubCollider{name: "wall", shape: rect(100, 0, 10, 10)}
	sys.Register(a)
	sys.Register(b)

	counter := &codeCounter{counts: make(map[string]int)}
	bus.Subscribe(EntryCode("player"), counter)
	bus.Subscribe(ExitCode("player"), counter)

	// Tick 1: apart.
	sys.Tick(1)
	if a.entries != 0 || sys.ActivePairs() != 0 {
		t.Fatalf("no entry expected while apart, got %d entries", a.entries)
	}

	// Tick 2: b moves onto a, entry fires exactly once per side.
	b.shape.Position = geom.Vector2{X: 5}
	sys.Tick(1)
	if a.entries != 1 || b.entries != 1 {
		t.Fatalf("entries = %d/%d, want 1/1", a.entries, b.entries)
	}
	if counter.counts[EntryCode("player")] != 1 {
		t.Fatalf("entry message count = %d, want 1", counter.counts[EntryCode("player")])
	}
	if sys.ActivePairs() != 1 {
		t.Fatalf("active pairs = %d, want 1", sys.ActivePairs())
	}

	// Tick 3: still overlapping, update not another entry.
	sys.Tick(1)
	if a.entries != 1 || a.updates != 1 {
		t.Fatalf("entries/updates = %d/%d, want 1/1", a.entries, a.updates)
	}

	// Tick 4: separated, exit fires once and the record is dropped.
	b.shape.Position = geom.Vector2{X: 100}
	sys.Tick(1)
	if a.exits != 1 || b.exits != 1 {
		t.Fatalf("exits = %d/%d, want 1/1", a.exits, b.exits)
	}
	if counter.counts[ExitCode("player")] != 1 {
		t.Fatalf("exit message count = %d, want 1", counter.counts[ExitCode("player")])
	}
	if sys.ActivePairs() != 0 {
		t.Fatalf("active pairs = %d, want 0 after exit", sys.ActivePairs())
	}
}

func TestStaticPairSkipped(t *testing.T) {
	sys, _ := newSystem()
	a := &stubCollider{name: "floor", shape: rect(0, 0, 10, 10), static: true}
	b := &stubCollider{name: "ceiling", shape: rect(5, 5, 10, 10), static: true}
	sys.Register(a)
	sys.Register(b)
	sys.Tick(1)
	if a.entries != 0 || b.entries != 0 {
		t.Fatal("static/static pairs must never be tested")
	}
}

func TestStaticDynamicTested(t *testing.T) {
	sys, _ := newSystem()
	a := &stubCollider{name: "ground", shape: rect(0, 0, 10, 10), static: true}
	b := &stubCollider{name: "bird", shape: circle(5, 5, 2)}
	sys.Register(a)
	sys.Register(b)
	sys.Tick(1)
	if a.entries != 1 || b.entries != 1 {
		t.Fatal("static/dynamic pair should collide")
	}
}

func TestEntryPayloadCarriesPairRecord(t *testing.T) {
	sys, bus := newSystem()
	a := &stubCollider{name: "a", shape: rect(0, 0, 4, 4)}
	b := &stubCollider{name: "b", shape: rect(1, 1, 4, 4)}
	sys.Register(a)
	sys.Register(b)

	var payload any
	bus.Subscribe(EntryCode("a"), &handlerFunc{fn: func(msg messaging.Message) {
		payload = msg.Context
		if msg.Priority != messaging.PriorityHigh {
			t.Errorf("entry message priority = %v, want high", msg.Priority)
		}
	}})
	sys.Tick(0.5)

	rec, ok := payload.(*PairRecord)
	if !ok {
		t.Fatalf("payload = %T, want *PairRecord", payload)
	}
	if rec.LastTouched != 0.5 {
		t.Fatalf("record timestamp = %v, want clock 0.5", rec.LastTouched)
	}
	if rec.A != Collider(a) && rec.B != Collider(a) {
		t.Fatal("record does not reference collider a")
	}
}

func TestUnregisterDropsRecordsSilently(t *testing.T) {
	sys, _ := newSystem()
	a := &stubCollider{name: "a", shape: rect(0, 0, 4, 4)}
	b := &stubCollider{name: "b", shape: rect(1, 1, 4, 4)}
	sys.Register(a)
	sys.Register(b)
	sys.Tick(1)
	if sys.ActivePairs() != 1 {
		t.Fatalf("active pairs = %d, want 1", sys.ActivePairs())
	}
	sys.Unregister(b)
	sys.Tick(1)
	if a.exits != 0 || b.exits != 0 {
		t.Fatal("unregister must not fire exit callbacks")
	}
	if sys.ActivePairs() != 0 {
		t.Fatal("records involving an unregistered collider must be dropped")
	}
}

// reactiveCollider runs a hook from its entry callback, for exercising
// registry mutations issued mid-scan.
type reactiveCollider struct {
	stubCollider
	onEntry func(other Collider)
}

func (c *reactiveCollider) OnCollisionEntry(other Collider) {
	c.stubCollider.OnCollisionEntry(other)
	if c.onEntry != nil {
		c.onEntry(other)
	}
}

func TestMidScanUnregisterIsDeferred(t *testing.T) {
	sys, _ := newSystem()
	b := &stubCollider{name: "b", shape: rect(1, 1, 4, 4)}
	c := &stubCollider{name: "c", shape: rect(2, 2, 4, 4)}
	a := &reactiveCollider{stubCollider: stubCollider{name: "a", shape: rect(0, 0, 4, 4)}}
	a.onEntry = func(other Collider) {
		if other == Collider(b) {
			sys.Unregister(b)
		}
	}
	sys.Register(a)
	sys.Register(b)
	sys.Register(c)

	// The removal is held back, so every pair of this scan still fires.
	sys.Tick(1)
	if a.entries != 2 || b.entries != 2 || c.entries != 2 {
		t.Fatalf("entries = %d/%d/%d, want 2/2/2 despite mid-scan unregister",
			a.entries, b.entries, c.entries)
	}
	if sys.ActivePairs() != 1 {
		t.Fatalf("active pairs = %d, want 1 after b's records dropped", sys.ActivePairs())
	}

	// Next tick b is gone: a and c update, b sees nothing further.
	sys.Tick(1)
	if b.updates != 0 || b.exits != 0 {
		t.Fatalf("b updates/exits = %d/%d, want 0/0 after removal", b.updates, b.exits)
	}
	if a.updates != 1 || c.updates != 1 {
		t.Fatalf("a/c updates = %d/%d, want 1/1", a.updates, c.updates)
	}
}

func TestMidScanRegisterTakesEffectNextTick(t *testing.T) {
	sys, _ := newSystem()
	b := &stubCollider{name: "b", shape: rect(1, 1, 4, 4)}
	c := &stubCollider{name: "c", shape: rect(2, 2, 4, 4)}
	a := &reactiveCollider{stubCollider: stubCollider{name: "a", shape: rect(0, 0, 4, 4)}}
	a.onEntry = func(Collider) { sys.Register(c) }
	sys.Register(a)
	sys.Register(b)

	sys.Tick(1)
	if c.entries != 0 {
		t.Fatalf("c entries = %d, want 0 in the tick that registered it", c.entries)
	}
	if sys.ActivePairs() != 1 {
		t.Fatalf("active pairs = %d, want 1", sys.ActivePairs())
	}

	sys.Tick(1)
	if c.entries != 2 {
		t.Fatalf("c entries = %d, want 2 once it joins the scan", c.entries)
	}
	if sys.ActivePairs() != 3 {
		t.Fatalf("active pairs = %d, want 3", sys.ActivePairs())
	}
}

// handlerFunc adapts a func to messaging.Handler for tests. A pointer type,
// so every adapter stays comparable for the bus's duplicate check.
type handlerFunc struct {
	fn func(messaging.Message)
}

func (f *handlerFunc) OnMessage(msg messaging.Message) { f.fn(msg) }
