// Package cache provides an in-memory cache partitioned into named regions.
// Each region has its own entry limit with least-recently-used eviction
// and its own time-to-live.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/masamcp/pkg/metricskey"
	"github.com/effective-security/xlog"
	lru "github.com/hashicorp/golang-lru/v2"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "cache")

const (
	// DefaultMaxSize is the default maximum number of entries per region
	DefaultMaxSize = 100
	// DefaultTTL is the default entry time-to-live
	DefaultTTL = 5 * time.Minute
)

// Regions used by the Masa API methods
const (
	RegionTwitter    = "twitter"
	RegionSimilarity = "similarity"
	RegionScrape     = "scrape"
	RegionExtract    = "extract"
	RegionAnalysis   = "analysis"
)

// Options configures a region when it is created
type Options struct {
	MaxSize int
	TTL     time.Duration
}

type entry struct {
	key        string
	value      any
	insertedAt time.Time
	ttl        time.Duration
	region     string
}

func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.insertedAt.Add(e.ttl))
}

type region struct {
	name    string
	options Options
	entries *lru.Cache[string, *entry]
	// mu orders Add with the removal of expired entries
	mu sync.Mutex
}

// add stores the entry and reports whether another entry was evicted
func (r *region) add(e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Add(e.key, e)
}

// removeExpired removes the key only if it still holds the expired entry,
// a fresh value stored meanwhile is kept
func (r *region) removeExpired(e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.entries.Peek(e.key)
	if !ok || cur != e {
		return false
	}
	return r.entries.Remove(e.key)
}

// Manager owns all regions and their entries.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	regions  map[string]*region
	defaults map[string]Options
	fallback Options
	now      func() time.Time
}

// Option configures the Manager
type Option func(*Manager)

// WithClock sets the clock used to evaluate expiry
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithDefaults sets options used for regions
// created without explicit options
func WithDefaults(o Options) Option {
	return func(m *Manager) {
		m.fallback = normalize(o, Options{MaxSize: DefaultMaxSize, TTL: DefaultTTL})
	}
}

// WithRegionDefaults sets per-region options used when
// a region is created without explicit options
func WithRegionDefaults(defaults map[string]Options) Option {
	return func(m *Manager) {
		for name, o := range defaults {
			m.defaults[name] = o
		}
	}
}

// NewManager returns a new cache manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		regions:  make(map[string]*region),
		defaults: make(map[string]Options),
		fallback: Options{MaxSize: DefaultMaxSize, TTL: DefaultTTL},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value stored under key in the region,
// if it is present and not expired.
// Get never creates a region.
func (m *Manager) Get(regionName, key string) (any, bool) {
	m.mu.Lock()
	r := m.regions[regionName]
	m.mu.Unlock()

	if r == nil {
		metricskey.StatsCacheMisses.IncrCounter(1, regionName)
		return nil, false
	}

	e, ok := r.entries.Get(key)
	if !ok {
		metricskey.StatsCacheMisses.IncrCounter(1, regionName)
		return nil, false
	}
	if e.expired(m.now()) {
		if r.removeExpired(e) {
			logger.KV(xlog.DEBUG, "status", "expired", "region", regionName, "key", key)
		}
		metricskey.StatsCacheMisses.IncrCounter(1, regionName)
		return nil, false
	}

	metricskey.StatsCacheHits.IncrCounter(1, regionName)
	return e.value, true
}

// Set stores the value under key in the region.
// The options are applied only when the region is created by this call,
// later calls never change the bounds of an existing region.
func (m *Manager) Set(regionName, key string, value any, opts *Options) error {
	r, err := m.region(regionName, opts)
	if err != nil {
		return err
	}

	e := &entry{
		key:        key,
		value:      value,
		insertedAt: m.now(),
		ttl:        r.options.TTL,
		region:     regionName,
	}
	if evicted := r.add(e); evicted {
		metricskey.StatsCacheEvictions.IncrCounter(1, regionName)
		logger.KV(xlog.DEBUG, "status", "evicted", "region", regionName)
	}
	return nil
}

// Delete removes the key from the region
func (m *Manager) Delete(regionName, key string) {
	m.mu.Lock()
	r := m.regions[regionName]
	m.mu.Unlock()

	if r != nil {
		r.entries.Remove(key)
	}
}

// Clear drops the region with all its entries.
// A later Set may create and configure it again.
func (m *Manager) Clear(regionName string) {
	m.mu.Lock()
	r := m.regions[regionName]
	delete(m.regions, regionName)
	m.mu.Unlock()

	if r != nil {
		r.entries.Purge()
	}
}

// Len returns the number of entries in the region,
// expired entries not yet removed are included
func (m *Manager) Len(regionName string) int {
	m.mu.Lock()
	r := m.regions[regionName]
	m.mu.Unlock()

	if r == nil {
		return 0
	}
	return r.entries.Len()
}

// Regions returns sorted names of existing regions
func (m *Manager) Regions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.regions))
	for name := range m.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns options of the region, or false if it does not exist
func (m *Manager) Options(regionName string) (Options, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.regions[regionName]
	if r == nil {
		return Options{}, false
	}
	return r.options, true
}

func (m *Manager) region(name string, opts *Options) (*region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.regions[name]; ok {
		return r, nil
	}

	def := m.fallback
	if o, ok := m.defaults[name]; ok {
		def = normalize(o, def)
	}
	o := def
	if opts != nil {
		o = normalize(*opts, def)
	}

	entries, err := lru.New[string, *entry](o.MaxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create region %q", name)
	}

	r := &region{
		name:    name,
		options: o,
		entries: entries,
	}
	m.regions[name] = r

	logger.KV(xlog.DEBUG,
		"status", "region_created",
		"region", name,
		"max_size", o.MaxSize,
		"ttl", o.TTL.String())

	return r, nil
}

func normalize(o, def Options) Options {
	if o.MaxSize <= 0 {
		o.MaxSize = def.MaxSize
	}
	if o.TTL <= 0 {
		o.TTL = def.TTL
	}
	return o
}
