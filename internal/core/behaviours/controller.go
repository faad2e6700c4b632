package behaviours

import (
	"fmt"

	"github.com/aethersim/aether/internal/core/collision"
	"github.com/aethersim/aether/internal/core/components"
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/input"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// Message codes the controller understands beyond collision and key events.
const (
	CodeGameReset  = "GAME_RESET"
	CodePlayerDied = "PLAYER_DIED"
)

const (
	defaultFlapKey     = "space"
	defaultFlapImpulse = 5.0
)

// PlayerController is the domain-specific behaviour layered on the generic
// framework: it applies a constant acceleration to its owner, reacts to a
// flap key with an upward impulse, and dies on contact with the ground
// collider. Sibling components are referenced by name and resolved during
// the updateReady pass, once the whole tree exists.
type PlayerController struct {
	scene.BaseBehaviour
	acceleration geom.Vector3
	playerName   string
	groundName   string
	spriteName   string
	flapKey      string
	flapImpulse  float64
	flapSound    string
	deathSound   string

	playerCollision *components.Collision
	sprite          *components.AnimatedSprite
	start           geom.Vector3
	velocity        geom.Vector3
	dead            bool
}

type PlayerControllerConfig struct {
	Name         string
	Acceleration geom.Vector3
	Player       string
	Ground       string
	Sprite       string
	FlapKey      string
	FlapImpulse  float64
	FlapSound    string
	DeathSound   string
}

func NewPlayerController(cfg PlayerControllerConfig) *PlayerController {
	if cfg.FlapKey == "" {
		cfg.FlapKey = defaultFlapKey
	}
	if cfg.FlapImpulse == 0 {
		cfg.FlapImpulse = defaultFlapImpulse
	}
	return &PlayerController{
		BaseBehaviour: scene.NewBaseBehaviour(cfg.Name),
		acceleration:  cfg.Acceleration,
		playerName:    cfg.Player,
		groundName:    cfg.Ground,
		spriteName:    cfg.Sprite,
		flapKey:       cfg.FlapKey,
		flapImpulse:   cfg.FlapImpulse,
		flapSound:     cfg.FlapSound,
		deathSound:    cfg.DeathSound,
	}
}

func (p *PlayerController) Dead() bool             { return p.dead }
func (p *PlayerController) Velocity() geom.Vector3 { return p.velocity }

// UpdateReady resolves the named sibling components and subscribes to the
// flap key, the player's collision entries and the reset signal.
func (p *PlayerController) UpdateReady() error {
	s := p.Owner().Scene()
	svc := p.Services()

	c, err := s.FindComponent(p.playerName)
	if err != nil {
		return err
	}
	playerCollision, ok := c.(*components.Collision)
	if !ok {
		return fmt.Errorf("component %q is %T, want collision", p.playerName, c)
	}
	// The ground collider only needs to exist; contacts arrive by name.
	if _, err = s.FindComponent(p.groundName); err != nil {
		return err
	}
	c, err = s.FindComponent(p.spriteName)
	if err != nil {
		return err
	}
	sprite, ok := c.(*components.AnimatedSprite)
	if !ok {
		return fmt.Errorf("component %q is %T, want animated sprite", p.spriteName, c)
	}

	p.playerCollision = playerCollision
	p.sprite = sprite
	p.start = p.Owner().Transform.Position

	svc.Bus.Subscribe(input.DownCode(p.flapKey), p)
	svc.Bus.Subscribe(collision.EntryCode(p.playerName), p)
	svc.Bus.Subscribe(CodeGameReset, p)
	return nil
}

func (p *PlayerController) Update(delta float64) {
	if p.dead {
		return
	}
	p.velocity = p.velocity.Add(p.acceleration.Scale(delta))
	p.Owner().Transform.Translate(p.velocity.Scale(delta))
}

func (p *PlayerController) OnMessage(msg messaging.Message) {
	switch msg.Code {
	case input.DownCode(p.flapKey):
		p.flap()
	case collision.EntryCode(p.playerName):
		p.contact(msg)
	case CodeGameReset:
		p.reset()
	}
}

func (p *PlayerController) flap() {
	if p.dead {
		return
	}
	p.velocity.Y = p.flapImpulse
	p.play(p.flapSound)
	if p.sprite != nil {
		p.sprite.Play()
	}
}

func (p *PlayerController) contact(msg messaging.Message) {
	rec, ok := msg.Context.(*collision.PairRecord)
	if !ok {
		return
	}
	other := rec.A
	if other == collision.Collider(p.playerCollision) {
		other = rec.B
	}
	if other.ColliderName() != p.groundName || p.dead {
		return
	}
	p.dead = true
	p.velocity = geom.Vector3{}
	if p.sprite != nil {
		p.sprite.Stop()
	}
	p.play(p.deathSound)
	svc := p.Services()
	svc.Log.Info("player died", log.String("behaviour", p.Name()))
	svc.Bus.Post(messaging.Message{Code: CodePlayerDied, Sender: p})
}

func (p *PlayerController) reset() {
	p.dead = false
	p.velocity = geom.Vector3{}
	p.Owner().Transform.Position = p.start
	if p.sprite != nil {
		p.sprite.Restart()
	}
}

func (p *PlayerController) play(sound string) {
	if sound == "" {
		return
	}
	if svc := p.Services(); svc != nil && svc.Sound != nil {
		svc.Sound.Play(sound)
	}
}

// PlayerControllerBuilder decodes a playerController record: name plus
// named references to the player collision, ground collision and animated
// sprite components; acceleration, flap tuning and sound names optional.
func PlayerControllerBuilder(cfg registry.Raw) (scene.Behaviour, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	player, err := cfg.RequireString("playerCollision")
	if err != nil {
		return nil, err
	}
	ground, err := cfg.RequireString("groundCollision")
	if err != nil {
		return nil, err
	}
	sprite, err := cfg.RequireString("animatedSprite")
	if err != nil {
		return nil, err
	}
	acceleration, _ := cfg.Vector("acceleration")
	flapKey, _ := cfg.String("flapKey")
	flapImpulse, _ := cfg.Float("flapImpulse")
	flapSound, _ := cfg.String("flapSound")
	deathSound, _ := cfg.String("deathSound")
	return NewPlayerController(PlayerControllerConfig{
		Name:         name,
		Acceleration: acceleration,
		Player:       player,
		Ground:       ground,
		Sprite:       sprite,
		FlapKey:      flapKey,
		FlapImpulse:  flapImpulse,
		FlapSound:    flapSound,
		DeathSound:   deathSound,
	}), nil
}
