// Package assets is the boundary to the asset-fetch collaborator. Fetches
// complete out-of-band; the engine pumps completions back onto the
// simulation goroutine each tick and announces them on the message bus.
package assets

import "errors"

// ReadyPrefix + asset name is the message code announcing a completed
// fetch. The message payload is the *Asset.
const ReadyPrefix = "ASSET_READY: "

func ReadyCode(name string) string { return ReadyPrefix + name }

// ErrNotReady is returned by Get for assets that were never fetched or are
// still in flight.
var ErrNotReady = errors.New("asset not ready")

// Asset is a fetched blob plus its content checksum.
type Asset struct {
	Name     string
	Data     []byte
	Checksum uint64
}

type Provider interface {
	// IsReady reports whether Get would succeed right now.
	IsReady(name string) bool
	// Get returns a ready asset or ErrNotReady.
	Get(name string) (*Asset, error)
	// Load triggers an asynchronous fetch and returns immediately.
	// Completed fetches surface through Poll.
	Load(name string)
	// Poll returns the fetches completed since the last call. The engine
	// calls it once per tick on the simulation goroutine.
	Poll() []*Asset
}
