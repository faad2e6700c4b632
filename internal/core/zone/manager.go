package zone

import (
	"errors"
	"fmt"

	"github.com/aethersim/aether/internal/core/assets"
	"github.com/aethersim/aether/internal/core/messaging"
	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/internal/core/registry"
	"github.com/aethersim/aether/internal/core/scene"
)

// ErrZoneNotRegistered means Change was asked for an id the manager never
// learned about. A configuration error: zone ids are registered up front.
var ErrZoneNotRegistered = errors.New("zone id not registered")

// Manager maps zone ids to the assets describing them and keeps at most
// one zone active. Changing zones tears the current one down first; if the
// target description is not fetched yet, construction is deferred until
// the asset-ready notification and Change returns immediately.
type Manager struct {
	log        log.Log
	services   *scene.Services
	components *registry.Registry[scene.Component]
	behaviours *registry.Registry[scene.Behaviour]

	zones   map[int]string
	active  *Zone
	pending *pendingZone
}

func NewManager(logger log.Log, services *scene.Services,
	components *registry.Registry[scene.Component],
	behaviours *registry.Registry[scene.Behaviour]) *Manager {
	return &Manager{
		log:        logger,
		services:   services,
		components: components,
		behaviours: behaviours,
		zones:      make(map[int]string),
	}
}

// RegisterZone binds a zone id to the asset holding its description.
// Re-registration overwrites; last registration wins.
func (m *Manager) RegisterZone(id int, assetName string) {
	m.zones[id] = assetName
}

// Active returns the current zone, nil when none loaded yet.
func (m *Manager) Active() *Zone { return m.active }

// Change deactivates the current zone and activates the zone registered
// under id. When the backing description asset is not ready, the fetch is
// triggered and construction happens later, on the asset-ready message;
// until then there is no active zone. A newer Change supersedes any change
// still waiting on its asset: the stale continuation is cancelled, so at
// most one deferred construction is ever pending.
func (m *Manager) Change(id int) error {
	assetName, ok := m.zones[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrZoneNotRegistered, id)
	}
	m.cancelPending()
	if m.active != nil {
		m.log.Info("zone deactivated",
			log.Int("id", m.active.ID()), log.String("zone", m.active.Name()))
		m.active.Unload()
		m.active = nil
	}
	if m.services.Assets.IsReady(assetName) {
		return m.construct(assetName)
	}
	m.log.Debug("zone description not ready, deferring",
		log.Int("id", id), log.String("asset", assetName))
	p := &pendingZone{m: m, asset: assetName}
	p.subID = m.services.Bus.Subscribe(assets.ReadyCode(assetName), p)
	m.pending = p
	m.services.Assets.Load(assetName)
	return nil
}

func (m *Manager) cancelPending() {
	if m.pending == nil {
		return
	}
	m.log.Debug("pending zone change superseded",
		log.String("asset", m.pending.asset))
	m.services.Bus.Cancel(m.pending.subID)
	m.pending = nil
}

func (m *Manager) construct(assetName string) error {
	asset, err := m.services.Assets.Get(assetName)
	if err != nil {
		return fmt.Errorf("zone asset %q: %w", assetName, err)
	}
	desc, err := ParseDescription(asset.Data)
	if err != nil {
		return err
	}
	z := New(m.log, m.services, m.components, m.behaviours)
	if err := z.Initialize(desc); err != nil {
		return err
	}
	if err := z.Load(); err != nil {
		return err
	}
	m.active = z
	return nil
}

// pendingZone is the one-shot continuation for a deferred zone change. It
// cancels its own subscription on the first notification, and builds
// nothing when a newer Change already superseded it.
type pendingZone struct {
	m     *Manager
	asset string
	subID string
}

func (p *pendingZone) OnMessage(msg messaging.Message) {
	if p.m.pending != p {
		return
	}
	p.m.pending = nil
	p.m.services.Bus.Cancel(p.subID)
	if err := p.m.construct(p.asset); err != nil {
		// Nothing to return the error to; the failed zone stays inactive.
		p.m.log.Error("deferred zone construction failed",
			log.String("asset", p.asset), log.Error(err))
	}
}
