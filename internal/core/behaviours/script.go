package behaviours

import (
	"fmt"

	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
	"github.com/aethersim/aether/internal/core/scripting"
)

// Script drives its owner's position from a Lua script defining
// update(dt, pos). The script comes either inline from the description
// ("source") or from a named asset ("file") that must be ready by the time
// the tree finishes loading.
type Script struct {
	scene.BaseBehaviour
	source string
	file   string
	engine *scripting.Engine
	broken bool
}

func NewScript(name, source, file string) *Script {
	return &Script{BaseBehaviour: scene.NewBaseBehaviour(name), source: source, file: file}
}

func (s *Script) UpdateReady() error {
	svc := s.Services()
	src := s.source
	if src == "" {
		asset, err := svc.Assets.Get(s.file)
		if err != nil {
			return fmt.Errorf("script behaviour %q: %w", s.Name(), err)
		}
		src = string(asset.Data)
	}
	engine := scripting.NewEngine(svc.Log)
	if err := engine.LoadSource(src); err != nil {
		engine.Close()
		return fmt.Errorf("script behaviour %q: %w", s.Name(), err)
	}
	s.engine = engine
	return nil
}

func (s *Script) Update(delta float64) {
	if s.engine == nil || s.broken {
		return
	}
	pos, err := s.engine.Update(delta, s.Owner().Transform.Position)
	if err != nil {
		// A failing script is disabled rather than failing the tick.
		s.broken = true
		s.Services().Log.Error("script behaviour disabled",
			log.String("behaviour", s.Name()), log.Error(err))
		return
	}
	s.Owner().Transform.Position = pos
}

// ScriptBuilder decodes a script record: name plus either inline source or
// a file asset name.
func ScriptBuilder(cfg registry.Raw) (scene.Behaviour, error) {
	name, err := cfg.RequireString("name")
	if err != nil {
		return nil, err
	}
	source, _ := cfg.String("source")
	file, _ := cfg.String("file")
	if source == "" && file == "" {
		return nil, registry.FieldError("source or file")
	}
	return NewScript(name, source, file), nil
}
