// Package resolve picks and resolves a playable stream among the sources of
// an episode.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/anicat-cli/anicat/log"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/mo"
)

var (
	// ErrNotFound is returned by a Fetcher when the upstream no longer has the stream.
	ErrNotFound = errors.New("stream not found")

	// ErrNoPlayableSource is returned when every candidate was rejected.
	ErrNoPlayableSource = errors.New("no playable source")
)

// Stream is a resolved stream location.
type Stream struct {
	URL     string
	Quality string
}

// Fetcher exchanges a decoded fetch token for a stream.
type Fetcher interface {
	FetchStream(ctx context.Context, token string) (Stream, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, token string) (Stream, error)

func (f FetcherFunc) FetchStream(ctx context.Context, token string) (Stream, error) {
	return f(ctx, token)
}

// Policy drives candidate selection.
type Policy struct {
	// Language is the preferred Source.Language.
	Language string
	// Bad is the source the caller reported as stalled, if any.
	Bad mo.Option[int]
}

// Result is a resolved source together with its owning show.
type Result struct {
	Show   *source.Show   `json:"show"`
	Source *source.Source `json:"source"`
}

// Engine resolves sources one candidate at a time.
type Engine struct {
	fetcher Fetcher
}

func NewEngine(fetcher Fetcher) *Engine {
	return &Engine{fetcher: fetcher}
}

// Resolve selects a candidate by policy and fetches its stream. Candidates
// answering not found, or with an untranslatable stream, are dropped from
// the working pool and the selection is repeated until one resolves or
// none remain. A candidate that was already resolved is returned without a
// request. The returned source is a copy; candidates are left untouched.
func (e *Engine) Resolve(ctx context.Context, candidates []*source.Source, policy Policy) (*source.Source, error) {
	pool := slices.Clone(candidates)
	recovering := policy.Bad.IsPresent()

	for len(pool) > 0 {
		index, selected := Select(pool, policy.Language, recovering)
		if selected.SourcesFetched {
			return selected.Clone(), nil
		}

		stream, err := e.fetcher.FetchStream(ctx, DecodeToken(selected.FetchURL))
		if err == nil && (stream.URL == "" || stream.Quality == "") {
			err = &source.TranslationError{Field: "url"}
		}

		var translationErr *source.TranslationError
		switch {
		case errors.Is(err, ErrNotFound):
			log.Infof("source %d (%s) not found, %d left", selected.ID, selected.Name, len(pool)-1)
			pool = slices.Delete(pool, index, index+1)
			continue
		case errors.As(err, &translationErr):
			log.Warnf("source %d (%s) unusable: %v, %d left", selected.ID, selected.Name, err, len(pool)-1)
			pool = slices.Delete(pool, index, index+1)
			continue
		case err != nil:
			return nil, fmt.Errorf("resolve source %d: %w", selected.ID, err)
		}

		resolved := selected.Clone()
		resolved.URL = stream.URL
		resolved.Quality = stream.Quality
		resolved.SourcesFetched = true
		return resolved, nil
	}

	return nil, ErrNoPlayableSource
}
