package jikan

import (
	"sync"
	"time"

	"github.com/animecritique/critique/filesystem"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

const (
	animeLifetime = time.Hour * 24 * 2
	pageLifetime  = time.Hour
)

// cacheData is the on-disk layout of one cache file.
type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a keyed view over a single gache file.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.Mutex
}

func newCacher[K comparable, T any](path string, lifetime time.Duration) *cacher[K, T] {
	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get returns the entry for key. gache loads and checks expiry lazily on read,
// so reads take the write lock too.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if v, ok := data.Entries[key]; ok {
		return mo.Some(v)
	}
	return mo.None[T]()
}

// Set stores value under key, starting a fresh file when the current one is unreadable or expired.
func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// an unreadable file is replaced
	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}
	data.Entries[key] = value
	return c.internal.Set(data)
}

// Cache holds Jikan responses on disk: anime records for two days, list pages for an hour.
type Cache struct {
	animes *cacher[int, model.Anime]
	pages  *cacher[string, model.AnimePage]
}

// NewCache opens the cache files at the given paths.
func NewCache(animePath, pagePath string) *Cache {
	return &Cache{
		animes: newCacher[int, model.Anime](animePath, animeLifetime),
		pages:  newCacher[string, model.AnimePage](pagePath, pageLifetime),
	}
}

var (
	defaultCacheOnce sync.Once
	defaultCache     *Cache
)

// DefaultCache is the shared cache under where.Cache(), opened on first use.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache(where.AnimeCache(), where.PageCache())
	})
	return defaultCache
}
