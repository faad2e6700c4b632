package injector

import (
	"github.com/google/wire"

	"github.com/aethersim/aether/internal/core/assets"
	"github.com/aethersim/aether/internal/core/config"
	"github.com/aethersim/aether/internal/core/engine"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/scene"
)

var providerSet = wire.NewSet(
	ProvideLogger,
	ProvideAssetProvider,
	ProvideSoundPlayer,
	ProvideEngine,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Bind(new(assets.Provider), new(*assets.FileProvider)),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(log.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
}

func ProvideAssetProvider(cfg *config.Config, logger *log.Logger) *assets.FileProvider {
	return assets.NewFileProvider(logger, cfg.Assets.Dir)
}

// ProvideSoundPlayer returns nil: the simulation host has no audio
// collaborator, and nodes tolerate a missing sound service.
func ProvideSoundPlayer() scene.SoundPlayer {
	return nil
}

func ProvideEngine(logger log.Log, provider assets.Provider, sound scene.SoundPlayer) *engine.Engine {
	e := engine.New(logger, provider, sound)
	return e
}
