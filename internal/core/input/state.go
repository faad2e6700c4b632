// Package input holds the polled keyboard state the host feeds into the
// engine. Key transitions are also announced on the message bus by the
// engine, using the code helpers here.
package input

// Message code prefixes for key transitions.
const (
	DownPrefix = "KEY_DOWN: "
	UpPrefix   = "KEY_UP: "
)

func DownCode(key string) string { return DownPrefix + key }
func UpCode(key string) string   { return UpPrefix + key }

// State tracks which keys are currently held. Mutated only from the
// simulation goroutine.
type State struct {
	down map[string]bool
}

func NewState() *State {
	return &State{down: make(map[string]bool)}
}

// Press marks key held and reports whether this is a fresh transition.
func (s *State) Press(key string) bool {
	if s.down[key] {
		return false
	}
	s.down[key] = true
	return true
}

// Release clears key and reports whether it was held.
func (s *State) Release(key string) bool {
	if !s.down[key] {
		return false
	}
	delete(s.down, key)
	return true
}

func (s *State) Down(key string) bool {
	return s.down[key]
}

// Reset releases everything, e.g. on zone change.
func (s *State) Reset() {
	clear(s.down)
}
