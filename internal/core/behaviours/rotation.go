// Package behaviours holds the built-in behaviour implementations and
// their configuration builders. Behaviours never render; they mutate their
// owner's transform and react to time and messages.
package behaviours

import (
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// Type tags understood by the behaviour registry.
const (
	TagRotation         = "rotation"
	TagKeyboardMovement = "keyboardMovement"
	TagPlayerController = "playerController"
	TagScript           = "script"
)

// RegisterBuilders wires every built-in behaviour builder into reg.
func RegisterBuilders(reg *registry.Registry[scene.Behaviour]) {
	reg.Register(TagRotation, RotationBuilder)
	reg.Register(TagKeyboardMovement, KeyboardMovementBuilder)
	reg.Register(TagPlayerController, PlayerControllerBuilder)
	reg.Register(TagScript, ScriptBuilder)
}

// Rotation spins its owner with a constant per-axis angular velocity, in
// radians per second.
type Rotation struct {
	scene.BaseBehaviour
	velocity geom.Vector3
}

func NewRotation(name string, velocity geom.Vector3) *Rotation {
	return &Rotation{BaseBehaviour: scene.NewBaseBehaviour(name), velocity: velocity}
}

func (r *Rotation) Update(delta float64) {
	r.Owner().Transform.Rotate(r.velocity.Scale(delta))
}

// RotationBuilder decodes a rotation record: name and a rotation vector
// with optional axes.
func RotationBuilder(cfg registry.Raw) (scene.Behaviour, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	velocity, ok := cfg.Vector("rotation")
	if !ok {
		return nil, registry.FieldError("rotation")
	}
	return NewRotation(name, velocity), nil
}
