package registry

import (
	"fmt"

	"github.com/aethersim/aether/internal/core/geom"
)

// Raw is one untyped configuration record as decoded from a zone
// description. Builders pull typed fields out of it; required-field helpers
// return configuration errors.
type Raw map[string]any

func (r Raw) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

func (r Raw) Bool(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

// Float accepts both int and float64: YAML decodes whole numbers as int.
func (r Raw) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func (r Raw) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Child returns a nested record.
func (r Raw) Child(key string) (Raw, bool) {
	switch v := r[key].(type) {
	case Raw:
		return v, true
	case map[string]any:
		return Raw(v), true
	default:
		return nil, false
	}
}

// List returns a list of nested records.
func (r Raw) List(key string) ([]Raw, bool) {
	items, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Raw, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, Raw(m))
	}
	return out, true
}

// Ints returns an integer sequence, e.g. a frame-index list.
func (r Raw) Ints(key string) ([]int, bool) {
	items, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case int:
			out = append(out, v)
		case int64:
			out = append(out, int(v))
		case float64:
			out = append(out, int(v))
		default:
			return nil, false
		}
	}
	return out, true
}

// Vector reads a nested {x, y, z} record; absent axes stay zero.
func (r Raw) Vector(key string) (geom.Vector3, bool) {
	child, ok := r.Child(key)
	if !ok {
		return geom.Vector3{}, false
	}
	var v geom.Vector3
	v.X, _ = child.Float("x")
	v.Y, _ = child.Float("y")
	v.Z, _ = child.Float("z")
	return v, true
}

func (r Raw) RequireString(key string) (string, error) {
	s, ok := r.String(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return s, nil
}

func (r Raw) RequireFloat(key string) (float64, error) {
	f, ok := r.Float(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return f, nil
}

func (r Raw) RequireInt(key string) (int, error) {
	i, ok := r.Int(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return i, nil
}

func (r Raw) RequireChild(key string) (Raw, error) {
	c, ok := r.Child(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return c, nil
}

func (r Raw) RequireInts(key string) ([]int, error) {
	v, ok := r.Ints(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return v, nil
}
