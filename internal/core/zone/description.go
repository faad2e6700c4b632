// Package zone turns declarative zone descriptions into live node trees
// and governs their lifecycle through a one-way state machine. The manager
// keeps the id-to-asset registry and swaps the active zone.
package zone

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aethersim/aether/internal/core/geom"
	"github.com/aethersim/aether/internal/core/registry"
)

// Description is one zone as authored: identity plus the object tree.
// Component and behaviour records stay untyped here; the extension
// registries validate and decode them during Initialize.
type Description struct {
	ID          int          `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Objects     []ObjectDesc `yaml:"objects" json:"objects"`
}

type ObjectDesc struct {
	Name       string         `yaml:"name" json:"name"`
	Transform  *TransformDesc `yaml:"transform,omitempty" json:"transform,omitempty"`
	Components []registry.Raw `yaml:"components,omitempty" json:"components,omitempty"`
	Behaviours []registry.Raw `yaml:"behaviours,omitempty" json:"behaviours,omitempty"`
	Children   []ObjectDesc   `yaml:"children,omitempty" json:"children,omitempty"`
}

// TransformDesc overrides part of a node's transform. Absent vectors keep
// the node defaults, so a transform giving only a position leaves scale at
// one.
type TransformDesc struct {
	Position *VectorDesc `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation *VectorDesc `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    *VectorDesc `yaml:"scale,omitempty" json:"scale,omitempty"`
}

type VectorDesc struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v *VectorDesc) vector() geom.Vector3 {
	return geom.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (t *TransformDesc) apply(dst *geom.Transform) {
	if t == nil {
		return
	}
	if t.Position != nil {
		dst.Position = t.Position.vector()
	}
	if t.Rotation != nil {
		dst.Rotation = t.Rotation.vector()
	}
	if t.Scale != nil {
		dst.Scale = t.Scale.vector()
	}
}

// ParseDescription decodes a zone description document. YAML is a superset
// of JSON, so both authoring formats decode through the same path.
func ParseDescription(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse zone description: %w", err)
	}
	return &desc, nil
}
