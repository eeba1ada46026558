// Package query keeps the anime search history and suggests past searches.
package query

import (
	"strings"
	"sync"

	"github.com/animecritique/critique/filesystem"
	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// SearchWeight and SelectWeight rank a typed search and a search that led to an opened anime.
const (
	SearchWeight = 1
	SelectWeight = 3
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

type history = map[string]*record

var (
	mu          sync.Mutex
	cacheOnce   sync.Once
	cacher      *gache.Cache[history]
	suggestions = make(map[string][]string)
)

func store() *gache.Cache[history] {
	cacheOnce.Do(func() {
		cacher = gache.New[history](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

func load() history {
	cached, expired, err := store().Get()
	if err != nil || expired || cached == nil {
		return make(history)
	}
	return cached
}

// Remember records q, or raises its rank by weight if it was searched before.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records := load()
	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	clear(suggestions)
	return store().Set(records)
}

// SuggestMany returns up to limit past searches fuzzily matching q, highest rank first.
// A limit of zero or less returns all. Nothing is suggested when search.show_query_suggestions is off.
func SuggestMany(q string, limit int) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	matches, ok := suggestions[q]
	if !ok {
		records := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
			return fuzzy.Match(q, r.Query)
		})

		slices.SortFunc(records, func(a, b *record) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		matches = lo.Map(records, func(r *record, _ int) string { return r.Query })
		suggestions[q] = matches
	}

	if limit > 0 && len(matches) > limit {
		return slices.Clone(matches[:limit])
	}
	return slices.Clone(matches)
}

// Forget drops the whole history.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()

	clear(suggestions)
	return store().Set(make(history))
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
