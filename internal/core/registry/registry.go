// Package registry maps string type tags to builders that validate an
// untyped configuration record and construct a concrete extension instance.
// One registry instance per extension kind (components, behaviours), owned
// by the engine context.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aethersim/aether/internal/core/observability/log"
)

// Configuration errors. All fail fast at zone-load time; none are retried.
var (
	ErrMissingType  = errors.New("configuration record has no type tag")
	ErrUnknownType  = errors.New("unknown type tag")
	ErrMissingField = errors.New("missing required field")
)

// FieldError reports a missing required field as a configuration error.
func FieldError(key string) error {
	return fmt.Errorf("%w: %q", ErrMissingField, key)
}

// Builder validates and decodes cfg in one step and constructs the
// instance. A failed decode returns a configuration error; partially
// constructed instances are never returned.
type Builder[T any] func(cfg Raw) (T, error)

type Registry[T any] struct {
	log      log.Log
	kind     string
	builders map[string]Builder[T]
}

func New[T any](logger log.Log, kind string) *Registry[T] {
	return &Registry[T]{
		log:      logger,
		kind:     kind,
		builders: make(map[string]Builder[T]),
	}
}

// Register stores builder under tag. Re-registration overwrites silently;
// last registration wins.
func (r *Registry[T]) Register(tag string, builder Builder[T]) {
	if _, ok := r.builders[tag]; ok {
		r.log.Debug("builder overwritten", log.String("kind", r.kind), log.String("tag", tag))
	}
	r.builders[tag] = builder
}

// Extract reads cfg's type tag, resolves the builder and runs it.
func (r *Registry[T]) Extract(cfg Raw) (T, error) {
	var zero T
	tag, ok := cfg.String("type")
	if !ok {
		return zero, fmt.Errorf("%s: %w", r.kind, ErrMissingType)
	}
	builder, ok := r.builders[tag]
	if !ok {
		return zero, fmt.Errorf("%s: %w: %q", r.kind, ErrUnknownType, tag)
	}
	instance, err := builder(cfg)
	if err != nil {
		return zero, fmt.Errorf("%s %q: %w", r.kind, tag, err)
	}
	return instance, nil
}

// Tags lists the registered type tags, sorted.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.builders))
	for tag := range r.builders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
