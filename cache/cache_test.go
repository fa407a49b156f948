package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/effective-security/masamcp/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestManager_GetSet(t *testing.T) {
	m := cache.NewManager()

	_, ok := m.Get("twitter", "k1")
	assert.False(t, ok)
	assert.Empty(t, m.Regions(), "Get must not create a region")

	require.NoError(t, m.Set("twitter", "k1", "v1", nil))
	v, ok := m.Get("twitter", "k1")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	o, ok := m.Options("twitter")
	require.True(t, ok)
	assert.Equal(t, cache.Options{MaxSize: cache.DefaultMaxSize, TTL: cache.DefaultTTL}, o)

	require.NoError(t, m.Set("twitter", "k1", "v2", nil))
	v, _ = m.Get("twitter", "k1")
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, m.Len("twitter"))
}

func TestManager_RegionIsolation(t *testing.T) {
	m := cache.NewManager()

	require.NoError(t, m.Set("scrape", "same", 1, nil))
	_, ok := m.Get("extract", "same")
	assert.False(t, ok)

	require.NoError(t, m.Set("extract", "same", 2, nil))
	v, _ := m.Get("scrape", "same")
	assert.Equal(t, 1, v)
	v, _ = m.Get("extract", "same")
	assert.Equal(t, 2, v)

	assert.Equal(t, []string{"extract", "scrape"}, m.Regions())
}

func TestManager_TTL(t *testing.T) {
	clock := newFakeClock()
	m := cache.NewManager(cache.WithClock(clock.Now))

	require.NoError(t, m.Set("analysis", "k", "v", &cache.Options{TTL: 50 * time.Millisecond}))

	clock.Advance(49 * time.Millisecond)
	_, ok := m.Get("analysis", "k")
	assert.True(t, ok)

	// reads do not extend the lifetime
	clock.Advance(11 * time.Millisecond)
	_, ok = m.Get("analysis", "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len("analysis"))
}

func TestManager_TTL_Boundary(t *testing.T) {
	clock := newFakeClock()
	m := cache.NewManager(cache.WithClock(clock.Now))

	require.NoError(t, m.Set("analysis", "k", "v", &cache.Options{TTL: time.Second}))
	clock.Advance(time.Second)
	_, ok := m.Get("analysis", "k")
	assert.False(t, ok)
}

func TestManager_ExpiredRemovalKeepsFreshValue(t *testing.T) {
	clock := newFakeClock()
	var onNow func()
	now := func() time.Time {
		if h := onNow; h != nil {
			onNow = nil
			h()
		}
		return clock.Now()
	}
	m := cache.NewManager(cache.WithClock(now))

	require.NoError(t, m.Set("twitter", "k", "old", &cache.Options{TTL: time.Second}))
	clock.Advance(2 * time.Second)

	// a fresh value is stored after Get found the expired entry,
	// but before it was removed
	onNow = func() {
		require.NoError(t, m.Set("twitter", "k", "fresh", nil))
	}
	_, ok := m.Get("twitter", "k")
	assert.False(t, ok)

	v, ok := m.Get("twitter", "k")
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestManager_LRU(t *testing.T) {
	m := cache.NewManager()
	opts := &cache.Options{MaxSize: 3}

	require.NoError(t, m.Set("similarity", "a", 1, opts))
	require.NoError(t, m.Set("similarity", "b", 2, opts))
	require.NoError(t, m.Set("similarity", "c", 3, opts))

	// touch a, so b becomes the least recently used
	_, ok := m.Get("similarity", "a")
	require.True(t, ok)

	require.NoError(t, m.Set("similarity", "d", 4, opts))
	assert.Equal(t, 3, m.Len("similarity"))

	_, ok = m.Get("similarity", "b")
	assert.False(t, ok)
	for _, k := range []string{"a", "c", "d"} {
		_, ok = m.Get("similarity", k)
		assert.True(t, ok, k)
	}
}

func TestManager_OptionsOnlyOnCreate(t *testing.T) {
	m := cache.NewManager()

	require.NoError(t, m.Set("twitter", "a", 1, &cache.Options{MaxSize: 2, TTL: time.Minute}))
	require.NoError(t, m.Set("twitter", "b", 2, &cache.Options{MaxSize: 10, TTL: time.Hour}))
	require.NoError(t, m.Set("twitter", "c", 3, &cache.Options{MaxSize: 10, TTL: time.Hour}))

	assert.Equal(t, 2, m.Len("twitter"))
	o, _ := m.Options("twitter")
	assert.Equal(t, cache.Options{MaxSize: 2, TTL: time.Minute}, o)
}

func TestManager_Defaults(t *testing.T) {
	m := cache.NewManager(
		cache.WithDefaults(cache.Options{MaxSize: 50}),
		cache.WithRegionDefaults(map[string]cache.Options{
			"scrape": {TTL: time.Minute},
		}),
	)

	require.NoError(t, m.Set("scrape", "k", 1, nil))
	require.NoError(t, m.Set("extract", "k", 1, nil))
	require.NoError(t, m.Set("analysis", "k", 1, &cache.Options{MaxSize: 5}))

	o, _ := m.Options("scrape")
	assert.Equal(t, cache.Options{MaxSize: 50, TTL: time.Minute}, o)
	o, _ = m.Options("extract")
	assert.Equal(t, cache.Options{MaxSize: 50, TTL: cache.DefaultTTL}, o)
	o, _ = m.Options("analysis")
	assert.Equal(t, cache.Options{MaxSize: 5, TTL: cache.DefaultTTL}, o)
}

func TestManager_DeleteClear(t *testing.T) {
	m := cache.NewManager()

	// idempotent on missing regions
	m.Delete("twitter", "k")
	m.Clear("twitter")

	require.NoError(t, m.Set("twitter", "k1", 1, &cache.Options{MaxSize: 2}))
	require.NoError(t, m.Set("twitter", "k2", 2, nil))

	m.Delete("twitter", "k1")
	m.Delete("twitter", "k1")
	_, ok := m.Get("twitter", "k1")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len("twitter"))

	m.Clear("twitter")
	_, ok = m.Get("twitter", "k2")
	assert.False(t, ok)
	assert.Empty(t, m.Regions())

	// region is configured again after Clear
	require.NoError(t, m.Set("twitter", "k", 1, &cache.Options{MaxSize: 7}))
	o, _ := m.Options("twitter")
	assert.Equal(t, 7, o.MaxSize)
}

func TestManager_Concurrent(t *testing.T) {
	m := cache.NewManager()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			region := fmt.Sprintf("r%d", i%3)
			for j := range 50 {
				key := fmt.Sprintf("k%d", j)
				_ = m.Set(region, key, j, nil)
				_, _ = m.Get(region, key)
				if j%10 == 0 {
					m.Delete(region, key)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.Regions(), 3)
}

func TestRegion(t *testing.T) {
	m := cache.NewManager()
	r := cache.NewRegion[*string](m, "extract", &cache.Options{MaxSize: 1})
	assert.Equal(t, "extract", r.Name())

	_, ok := r.Get("k")
	assert.False(t, ok)

	v := "bitcoin"
	require.NoError(t, r.Set("k", &v))
	got, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, "bitcoin", *got)

	// a foreign value under the same region is not visible as T
	require.NoError(t, m.Set("extract", "other", 42, nil))
	_, ok = r.Get("other")
	assert.False(t, ok)

	r.Delete("other")
	r.Clear()
	assert.Equal(t, 0, m.Len("extract"))
}

type page struct {
	Items []string       `json:"items"`
	Meta  map[string]any `json:"meta"`
}

func TestRegion_ReturnsCopies(t *testing.T) {
	m := cache.NewManager()
	r := cache.NewRegion[page](m, cache.RegionTwitter, nil)

	stored := page{Items: []string{"a", "b"}, Meta: map[string]any{"lang": "en"}}
	require.NoError(t, r.Set("k", stored))

	// changes to the value after Set are not visible
	stored.Items[0] = "changed"
	stored.Meta["lang"] = "changed"

	first, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, first.Items)
	assert.Equal(t, "en", first.Meta["lang"])

	// changes to a returned value are not visible to the next Get
	first.Items[0] = "mutated"
	first.Meta["lang"] = "mutated"
	first.Items = append(first.Items, "c")

	second, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, second.Items)
	assert.Equal(t, "en", second.Meta["lang"])

	// another type under the same region and key is absent
	_, ok = cache.NewRegion[string](m, cache.RegionTwitter, nil).Get("k")
	assert.False(t, ok)
}

func TestRegion_SetEncodeError(t *testing.T) {
	m := cache.NewManager()
	r := cache.NewRegion[chan int](m, "bad", nil)
	err := r.Set("k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unable to encode value for region "bad"`)
	assert.Equal(t, 0, m.Len("bad"))
}

func TestKey(t *testing.T) {
	k1 := cache.Key("startLiveTwitterSearch", "ai", 10)
	k2 := cache.Key("startLiveTwitterSearch", "ai", 10)
	assert.Equal(t, k1, k2)
	assert.Contains(t, k1, "startLiveTwitterSearch:")

	assert.NotEqual(t, k1, cache.Key("startLiveTwitterSearch", "ai", 11))
	assert.NotEqual(t, k1, cache.Key("getLiveTwitterSearchStatus", "ai", 10))

	m1 := cache.Key("scrape", map[string]string{"a": "1", "b": "2"})
	m2 := cache.Key("scrape", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, m1, m2)

	assert.Equal(t, cache.Key("op"), cache.Key("op"))
	// unserializable values still produce a key
	assert.NotEmpty(t, cache.Key("op", make(chan int)))
}
