// Package components holds the built-in component implementations and
// their configuration builders: static sprites, animated sprites and
// collision shapes.
package components

import (
	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// Type tags understood by the component registry.
const (
	TagSprite         = "sprite"
	TagAnimatedSprite = "animatedSprite"
	TagCollision      = "collision"
)

// SpriteDrawer is the narrow contract a render surface must satisfy for
// sprites to draw. Material and texture management stay in the rendering
// collaborator; the core only forwards names and transforms.
type SpriteDrawer interface {
	DrawSprite(material string, world geom.Matrix4, width, height float64, frame int)
}

// Sprite is a static textured quad anchored to its owner's transform.
type Sprite struct {
	scene.BaseComponent
	materialName string
	origin       geom.Vector2
	width        float64
	height       float64
	frame        int
}

func NewSprite(name, materialName string, origin geom.Vector2, width, height float64) *Sprite {
	s := &Sprite{
		BaseComponent: scene.NewBaseComponent(name),
		materialName:  materialName,
		origin:        origin,
		width:         width,
		height:        height,
	}
	return s
}

func (s *Sprite) MaterialName() string { return s.materialName }
func (s *Sprite) Size() (w, h float64) { return s.width, s.height }
func (s *Sprite) Frame() int           { return s.frame }

func (s *Sprite) Render(surface scene.Surface) {
	drawer, ok := surface.(SpriteDrawer)
	if !ok {
		return
	}
	drawer.DrawSprite(s.materialName, s.Owner().World(), s.width, s.height, s.frame)
}

// RegisterBuilders wires every built-in component builder into reg.
func RegisterBuilders(reg *registry.Registry[scene.Component]) {
	reg.Register(TagSprite, SpriteBuilder)
	reg.Register(TagAnimatedSprite, AnimatedSpriteBuilder)
	reg.Register(TagCollision, CollisionBuilder)
}

// SpriteBuilder decodes a sprite record: name and materialName are
// required, origin/width/height optional.
func SpriteBuilder(cfg registry.Raw) (scene.Component, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	materialName, err := cfg.RequireString("materialName")
	if err != nil {
		return nil, err
	}
	var origin geom.Vector2
	if v, ok := cfg.Vector("origin"); ok {
		origin = v.XY()
	}
	width, _ := cfg.Float("width")
	height, _ := cfg.Float("height")
	return NewSprite(name, materialName, origin, width, height), nil
}
