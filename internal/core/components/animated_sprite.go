package components

import (
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// defaultFrameRate is the playback speed when the description does not give
// one, in frames per second.
const defaultFrameRate = 10.0

// AnimatedSprite is a sprite cycling through an explicit frame-index
// sequence on the sprite sheet named by materialName.
type AnimatedSprite struct {
	Sprite
	frameWidth  int
	frameHeight int
	frameCount  int
	sequence    []int
	frameRate   float64
	autoPlay    bool

	playing  bool
	seqIndex int
	elapsed  float64
}

func NewAnimatedSprite(name, materialName string, origin geom.Vector2, width, height float64,
	frameWidth, frameHeight, frameCount int, sequence []int, frameRate float64, autoPlay bool) *AnimatedSprite {
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}
	a := &AnimatedSprite{
		Sprite:      *NewSprite(name, materialName, origin, width, height),
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
		frameCount:  frameCount,
		sequence:    sequence,
		frameRate:   frameRate,
		autoPlay:    autoPlay,
	}
	if len(sequence) > 0 {
		a.frame = sequence[0]
	}
	return a
}

func (a *AnimatedSprite) Playing() bool         { return a.playing }
func (a *AnimatedSprite) FrameSize() (w, h int) { return a.frameWidth, a.frameHeight }
func (a *AnimatedSprite) Play()                 { a.playing = true }
func (a *AnimatedSprite) Stop()                 { a.playing = false }

// Restart rewinds to the start of the sequence and plays.
func (a *AnimatedSprite) Restart() {
	a.seqIndex = 0
	a.elapsed = 0
	if len(a.sequence) > 0 {
		a.frame = a.sequence[0]
	}
	a.playing = true
}

func (a *AnimatedSprite) Load() error {
	if a.autoPlay {
		a.playing = true
	}
	return nil
}

// Update advances the frame clock, wrapping around the sequence.
func (a *AnimatedSprite) Update(delta float64) {
	if !a.playing || len(a.sequence) == 0 {
		return
	}
	a.elapsed += delta
	frameDuration := 1 / a.frameRate
	for a.elapsed >= frameDuration {
		a.elapsed -= frameDuration
		a.seqIndex = (a.seqIndex + 1) % len(a.sequence)
		a.frame = a.sequence[a.seqIndex]
	}
}

// AnimatedSpriteBuilder decodes an animatedSprite record. On top of the
// sprite fields it requires frameWidth, frameHeight, frameCount and
// frameSequence; frameRate and autoPlay are optional.
func AnimatedSpriteBuilder(cfg registry.Raw) (scene.Component, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	materialName, err := cfg.RequireString("materialName")
	if err != nil {
		return nil, err
	}
	frameWidth, err := cfg.RequireInt("frameWidth")
	if err != nil {
		return nil, err
	}
	frameHeight, err := cfg.RequireInt("frameHeight")
	if err != nil {
		return nil, err
	}
	frameCount, err := cfg.RequireInt("frameCount")
	if err != nil {
		return nil, err
	}
	sequence, err := cfg.RequireInts("frameSequence")
	if err != nil {
		return nil, err
	}
	var origin geom.Vector2
	if v, ok := cfg.Vector("origin"); ok {
		origin = v.XY()
	}
	width, _ := cfg.Float("width")
	height, _ := cfg.Float("height")
	frameRate, _ := cfg.Float("frameRate")
	autoPlay, _ := cfg.Bool("autoPlay")
	return NewAnimatedSprite(name, materialName, origin, width, height,
		frameWidth, frameHeight, frameCount, sequence, frameRate, autoPlay), nil
}
