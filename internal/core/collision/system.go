package collision

import (
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
)

// Message code prefixes forming the collision wire protocol. The payload of
// both is the *PairRecord.
const (
	EntryPrefix = "COLLISION_ENTRY: "
	ExitPrefix  = "COLLISION_EXIT: "
)

func EntryCode(name string) string { return EntryPrefix + name }
func ExitCode(name string) string  { return ExitPrefix + name }

// Collider is what the system tracks: a named shape owner with a static
// flag and lifecycle callbacks. Collision components implement it.
type Collider interface {
	ColliderName() string
	Shape() *Shape
	Static() bool
	OnCollisionEntry(other Collider)
	OnCollisionUpdate(other Collider)
	OnCollisionExit(other Collider)
}

// PairRecord is the persisted state for one ongoing intersection. At most
// one record exists per unordered pair. LastTouched is cumulative simulation
// time, refreshed every tick the pair still intersects; a stale timestamp
// after a scan means the pair separated.
type PairRecord struct {
	A, B        Collider
	LastTouched float64
}

type pairKey struct {
	lo, hi uint64
}

// System owns the collider registry and pair records. Single-threaded, tick
// driven; the pairwise scan is O(n^2) by design, with no spatial
// partitioning at the engine's target scale.
type System struct {
	log       log.Log
	bus       *messaging.Bus
	colliders []Collider
	ids       map[Collider]uint64
	nextID    uint64
	records   map[pairKey]*PairRecord
	clock     float64
	scanning  bool
	deferred  []deferredOp
}

// deferredOp is a Register or Unregister issued by a callback while the
// scan is running, held back until the scan completes.
type deferredOp struct {
	add      bool
	collider Collider
}

func NewSystem(logger log.Log, bus *messaging.Bus) *System {
	return &System{
		log:     logger,
		bus:     bus,
		ids:     make(map[Collider]uint64),
		records: make(map[pairKey]*PairRecord),
	}
}

// Register adds c to the active set. Registering twice is harmless. Called
// from an entry/update/exit callback mid-scan, the addition is buffered and
// applied once the scan completes, so c first participates next tick.
func (s *System) Register(c Collider) {
	if s.scanning {
		s.deferred = append(s.deferred, deferredOp{add: true, collider: c})
		return
	}
	if _, ok := s.ids[c]; ok {
		return
	}
	s.nextID++
	s.ids[c] = s.nextID
	s.colliders = append(s.colliders, c)
	s.log.Debug("collider registered", log.String("name", c.ColliderName()))
}

// Unregister removes c and drops any pair records involving it without
// firing exit events. Mid-scan calls are buffered like Register, so the
// indexed pair loop and record expiry never observe a removal.
func (s *System) Unregister(c Collider) {
	if s.scanning {
		s.deferred = append(s.deferred, deferredOp{add: false, collider: c})
		return
	}
	id, ok := s.ids[c]
	if !ok {
		return
	}
	delete(s.ids, c)
	for i, existing := range s.colliders {
		if existing == c {
			s.colliders = append(s.colliders[:i], s.colliders[i+1:]...)
			break
		}
	}
	for key := range s.records {
		if key.lo == id || key.hi == id {
			delete(s.records, key)
		}
	}
}

// Clock returns the accumulated simulation time.
func (s *System) Clock() float64 {
	return s.clock
}

// Tick advances the simulation clock and runs the pairwise scan. Pairs where
// both colliders are static are skipped.
func (s *System) Tick(delta float64) {
	s.clock += delta
	s.scanning = true
	for i := 0; i < len(s.colliders); i++ {
		for j := i + 1; j < len(s.colliders); j++ {
			a, b := s.colliders[i], s.colliders[j]
			if a.Static() && b.Static() {
				continue
			}
			if !a.Shape().Intersects(b.Shape()) {
				continue
			}
			key := s.keyFor(a, b)
			if rec, ok := s.records[key]; ok {
				a.OnCollisionUpdate(b)
				b.OnCollisionUpdate(a)
				rec.LastTouched = s.clock
				continue
			}
			rec := &PairRecord{A: a, B: b, LastTouched: s.clock}
			s.records[key] = rec
			a.OnCollisionEntry(b)
			b.OnCollisionEntry(a)
			s.postPair(EntryCode(a.ColliderName()), rec)
			s.postPair(EntryCode(b.ColliderName()), rec)
		}
	}
	s.expire()
	s.scanning = false
	ops := s.deferred
	s.deferred = nil
	for _, op := range ops {
		if op.add {
			s.Register(op.collider)
		} else {
			s.Unregister(op.collider)
		}
	}
}

// expire removes every record not refreshed by the current scan and fires
// the exit protocol for it.
func (s *System) expire() {
	for key, rec := range s.records {
		if rec.LastTouched == s.clock {
			continue
		}
		delete(s.records, key)
		rec.A.OnCollisionExit(rec.B)
		rec.B.OnCollisionExit(rec.A)
		s.postPair(ExitCode(rec.A.ColliderName()), rec)
		s.postPair(ExitCode(rec.B.ColliderName()), rec)
	}
}

func (s *System) postPair(code string, rec *PairRecord) {
	s.bus.Post(messaging.Message{
		Code:     code,
		Sender:   s,
		Context:  rec,
		Priority: messaging.PriorityHigh,
	})
}

func (s *System) keyFor(a, b Collider) pairKey {
	ia, ib := s.ids[a], s.ids[b]
	if ia > ib {
		ia, ib = ib, ia
	}
	return pairKey{lo: ia, hi: ib}
}

// ActivePairs reports how many pair records are currently live.
func (s *System) ActivePairs() int {
	return len(s.records)
}
