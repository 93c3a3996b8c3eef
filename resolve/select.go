package resolve

import (
	"net/url"
	"regexp"

	"github.com/anicat-cli/anicat/log"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MarkStalled flags the source reported as bad. When no source is reported
// every stall flag is cleared instead.
func MarkStalled(sources []*source.Source, bad mo.Option[int]) {
	id, ok := bad.Get()
	if !ok {
		for _, s := range sources {
			s.Stalled = false
		}
		return
	}

	if s, ok := lo.Find(sources, func(s *source.Source) bool { return s.ID == id }); ok {
		s.Stalled = true
	}
}

type predicate func(*source.Source) bool

// Select picks the source to try from pool and returns its index in pool.
// Predicates are applied as successive filters; the first survivor in pool
// order wins. When nothing survives the first element of pool is returned.
// An empty pool yields -1 and nil.
func Select(pool []*source.Source, language string, recovering bool) (int, *source.Source) {
	if len(pool) == 0 {
		return -1, nil
	}

	var predicates []predicate
	if recovering {
		predicates = append(predicates, func(s *source.Source) bool { return !s.Stalled })
	}
	predicates = append(predicates, func(s *source.Source) bool { return s.Language == language })

	indexes := lo.Range(len(pool))
	for _, p := range predicates {
		indexes = lo.Filter(indexes, func(i int, _ int) bool { return p(pool[i]) })
	}

	if len(indexes) == 0 {
		log.Warnf("no %s source matched, falling back to %q", language, pool[0].Name)
		return 0, pool[0]
	}
	return indexes[0], pool[indexes[0]]
}

var escape = regexp.MustCompile(`%[0-9a-fA-F]{2}`)

// DecodeToken percent-decodes a fetch token until no escape sequence is left
// that would decode further.
func DecodeToken(token string) string {
	decoded := token
	for {
		next, err := url.PathUnescape(decoded)
		if err != nil || !escape.MatchString(next) {
			return decoded
		}
		decoded = next
	}
}
