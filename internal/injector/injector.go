//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/aethersim/aether/internal/core/config"
	"github.com/aethersim/aether/internal/core/engine"
)

func InitializeEngine(cfg *config.Config) *engine.Engine {
	wire.Build(providerSet)
	return nil
}
