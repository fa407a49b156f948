package cache

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// Region is a typed view of a cache region.
// Values are stored as JSON snapshots, every Get decodes a new copy,
// so callers never share slices or maps with the cache.
type Region[T any] struct {
	manager *Manager
	name    string
	options *Options
}

// snapshot keeps the value type, so regions of different types
// sharing a name never decode each other's entries
type snapshot[T any] struct {
	data []byte
}

// NewRegion returns a typed view of the named region.
// The options are used when the region is created on first Set.
func NewRegion[T any](m *Manager, name string, opts *Options) *Region[T] {
	return &Region[T]{
		manager: m,
		name:    name,
		options: opts,
	}
}

// Name returns the region name
func (r *Region[T]) Name() string {
	return r.name
}

// Get returns a copy of the value stored under key.
// A value of a different type is reported as absent.
func (r *Region[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := r.manager.Get(r.name, key)
	if !ok {
		return zero, false
	}
	s, ok := v.(snapshot[T])
	if !ok {
		return zero, false
	}
	var res T
	if err := json.Unmarshal(s.data, &res); err != nil {
		logger.KV(xlog.ERROR, "region", r.name, "key", key, "err", err.Error())
		return zero, false
	}
	return res, true
}

// Set stores a copy of the value under key
func (r *Region[T]) Set(key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "unable to encode value for region %q", r.name)
	}
	return r.manager.Set(r.name, key, snapshot[T]{data: data}, r.options)
}

// Delete removes the key
func (r *Region[T]) Delete(key string) {
	r.manager.Delete(r.name, key)
}

// Clear drops all entries of the region
func (r *Region[T]) Clear() {
	r.manager.Clear(r.name)
}
