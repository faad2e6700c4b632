package behaviours

import (
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// KeyboardMovement translates its owner along x/y from the polled arrow
// keys, at a fixed scalar speed in units per second.
type KeyboardMovement struct {
	scene.BaseBehaviour
	speed float64
}

func NewKeyboardMovement(name string, speed float64) *KeyboardMovement {
	return &KeyboardMovement{BaseBehaviour: scene.NewBaseBehaviour(name), speed: speed}
}

func (k *KeyboardMovement) Update(delta float64) {
	svc := k.Services()
	if svc == nil || svc.Input == nil {
		return
	}
	var dir geom.Vector3
	if svc.Input.Down("left") {
		dir.X -= 1
	}
	if svc.Input.Down("right") {
		dir.X += 1
	}
	if svc.Input.Down("up") {
		dir.Y += 1
	}
	if svc.Input.Down("down") {
		dir.Y -= 1
	}
	k.Owner().Transform.Translate(dir.Scale(k.speed * delta))
}

// KeyboardMovementBuilder decodes a keyboardMovement record: name and a
// required scalar speed.
func KeyboardMovementBuilder(cfg registry.Raw) (scene.Behaviour, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	speed, err := cfg.RequireFloat("speed")
	if err != nil {
		return nil, err
	}
	return NewKeyboardMovement(name, speed), nil
}
