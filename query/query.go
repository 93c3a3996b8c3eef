// Package query keeps the search history and ranks search input against it
// and against search results.
package query

import (
	"strings"
	"sync"

	"github.com/anicat-cli/anicat/filesystem"
	"github.com/anicat-cli/anicat/key"
	"github.com/anicat-cli/anicat/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// History is a persisted set of past queries weighted by use.
type History struct {
	cacher *gache.Cache[map[string]*record]

	mu          sync.Mutex
	suggestions map[string][]*record
}

var (
	defaultHistory     *History
	defaultHistoryOnce sync.Once
)

// Default returns the history stored at where.Queries.
func Default() *History {
	defaultHistoryOnce.Do(func() {
		defaultHistory = NewHistory(where.Queries())
	})
	return defaultHistory
}

// NewHistory opens the history stored at path.
func NewHistory(path string) *History {
	return &History{
		cacher: gache.New[map[string]*record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
		suggestions: make(map[string][]*record),
	}
}

// Remember adds weight to the rank of q.
func (h *History) Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cached, expired, err := h.cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[q]; ok {
		r.Rank += weight
	} else {
		cached[q] = &record{Rank: weight, Query: q}
	}

	h.suggestions = make(map[string][]*record)
	return h.cacher.Set(cached)
}

// Suggest returns the best ranked past query fuzzily matching q.
func (h *History) Suggest(q string) mo.Option[string] {
	suggestions := h.SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, by descending rank.
// It returns nothing when suggestions are disabled.
func (h *History) SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	h.mu.Lock()
	defer h.mu.Unlock()

	records, ok := h.suggestions[q]
	if !ok {
		cached, expired, err := h.cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		records = lo.Filter(lo.Values(cached), func(r *record, _ int) bool {
			return fuzzy.Match(q, r.Query)
		})
		slices.SortFunc(records, func(a, b *record) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})
		h.suggestions[q] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Query
	})
}

// Clear forgets every query.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.suggestions = make(map[string][]*record)
	return h.cacher.Set(make(map[string]*record))
}

// Rank orders items by edit distance between q and their name, closest
// first. Items at the same distance keep their order.
func Rank[T any](q string, items []T, name func(T) string) []T {
	q = sanitize(q)
	distance := lo.SliceToMap(items, func(item T) (string, int) {
		n := name(item)
		return n, levenshtein.Distance(q, sanitize(n))
	})

	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b T) int {
		return distance[name(a)] - distance[name(b)]
	})
	return ranked
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
