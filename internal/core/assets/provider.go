package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/aethersim/aether/internal/core/observability/log"
)

// FileProvider serves assets from a directory. Load reads the file in a
// goroutine; the mutex covers the maps because fetch goroutines and the
// simulation goroutine both touch them. This is the only concurrency
// boundary in the core.
type FileProvider struct {
	log     log.Log
	dir     string
	mu      sync.Mutex
	ready   map[string]*Asset
	pending map[string]struct{}
	done    chan *Asset
}

var _ Provider = (*FileProvider)(nil)

func NewFileProvider(logger log.Log, dir string) *FileProvider {
	return &FileProvider{
		log:     logger,
		dir:     dir,
		ready:   make(map[string]*Asset),
		pending: make(map[string]struct{}),
		done:    make(chan *Asset, 64),
	}
}

func (p *FileProvider) IsReady(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ready[name]
	return ok
}

func (p *FileProvider) Get(name string) (*Asset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.ready[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotReady, name)
	}
	return a, nil
}

// Load starts an asynchronous fetch. Already-ready and in-flight names are
// ignored.
func (p *FileProvider) Load(name string) {
	p.mu.Lock()
	if _, ok := p.ready[name]; ok {
		p.mu.Unlock()
		return
	}
	if _, ok := p.pending[name]; ok {
		p.mu.Unlock()
		return
	}
	p.pending[name] = struct{}{}
	p.mu.Unlock()

	go func() {
		a, err := p.fetch(name)
		if err != nil {
			p.log.Error("asset fetch failed", log.String("asset", name), log.Error(err))
			p.mu.Lock()
			delete(p.pending, name)
			p.mu.Unlock()
			return
		}
		p.done <- a
	}()
}

// Poll moves completed fetches into the ready set and returns them. Called
// once per tick from the simulation goroutine.
func (p *FileProvider) Poll() []*Asset {
	var completed []*Asset
	for {
		select {
		case a := <-p.done:
			p.mu.Lock()
			delete(p.pending, a.Name)
			p.ready[a.Name] = a
			p.mu.Unlock()
			completed = append(completed, a)
		default:
			return completed
		}
	}
}

// Prefetch loads a batch synchronously, failing on the first error. Used at
// boot to warm the cache before the loop starts.
func (p *FileProvider) Prefetch(names ...string) error {
	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			a, err := p.fetch(name)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.ready[a.Name] = a
			p.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (p *FileProvider) fetch(name string) (*Asset, error) {
	path := filepath.Join(p.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", path, err)
	}
	a := &Asset{Name: name, Data: data, Checksum: xxhash.Sum64(data)}
	p.log.Debug("asset fetched",
		log.String("asset", name),
		log.Int("bytes", len(data)),
		log.Uint64("checksum", a.Checksum))
	return a, nil
}
