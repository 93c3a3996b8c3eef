// Package catalog holds the per-category show cache of a provider.
//
// The store owns every record it keeps. Callers only ever receive deep
// copies, and changes go back in through Replace, Merge, PutShow and
// UpdateEpisode, so a returned show can be freely decorated with overlays.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
)

var (
	ErrShowNotFound    = errors.New("show not found")
	ErrSeasonNotFound  = errors.New("season not found")
	ErrEpisodeNotFound = errors.New("episode not found")
)

type listing struct {
	order []string
	shows map[string]*source.Show
}

// Store is a concurrency safe per-category show cache with paging cursors.
type Store struct {
	mu       sync.RWMutex
	listings map[string]*listing
	cursors  map[string]int
}

func NewStore() *Store {
	return &Store{
		listings: make(map[string]*listing),
		cursors:  make(map[string]int),
	}
}

// Has reports whether the category was ever populated.
func (s *Store) Has(category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.listings[category]
	return ok
}

// Len returns the number of shows stored under the category.
func (s *Store) Len(category string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if l, ok := s.listings[category]; ok {
		return len(l.order)
	}
	return 0
}

// Cursor returns the next page offset of the category, if it is paginated.
func (s *Store) Cursor(category string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cursor, ok := s.cursors[category]
	return cursor, ok
}

func (s *Store) SetCursor(category string, cursor int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[category] = cursor
}

// Replace sets the category's shows to exactly shows, in their given order.
// Already resolved seasons of shows listed again are kept.
func (s *Store) Replace(category string, shows []*source.Show) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.listings[category]
	l := &listing{shows: make(map[string]*source.Show, len(shows))}
	for _, show := range shows {
		l.put(keepSeasons(prev, show.Clone()))
	}
	s.listings[category] = l
}

// Merge unions shows into the category by id. Existing shows are never
// dropped. An incoming show replaces the stored one, except that already
// resolved seasons survive a page that lists the show again.
func (s *Store) Merge(category string, shows []*source.Show) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[category]
	if !ok {
		l = &listing{shows: make(map[string]*source.Show, len(shows))}
		s.listings[category] = l
	}

	for _, show := range shows {
		l.put(keepSeasons(l, show.Clone()))
	}
}

// Shows returns copies of the category's shows in insertion order.
func (s *Store) Shows(category string) []*source.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[category]
	if !ok {
		return nil
	}
	return lo.Map(l.order, func(id string, _ int) *source.Show {
		return l.shows[id].Clone()
	})
}

// Show returns a copy of a single show.
func (s *Store) Show(category, id string) (*source.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	show, err := s.lookup(category, id)
	if err != nil {
		return nil, err
	}
	return show.Clone(), nil
}

// PutShow stores a copy of show under the category, keeping its position
// when it is already listed.
func (s *Store) PutShow(category string, show *source.Show) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[category]
	if !ok {
		l = &listing{shows: make(map[string]*source.Show)}
		s.listings[category] = l
	}
	l.put(show.Clone())
}

// UpdateEpisode runs fn on the stored episode and returns a copy of the
// owning show taken after fn returns. fn must not retain the episode.
func (s *Store) UpdateEpisode(category, showID string, seasonID, episodeID int, fn func(*source.Episode)) (*source.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	show, err := s.lookup(category, showID)
	if err != nil {
		return nil, err
	}

	season, ok := show.Season(seasonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s season %d", ErrSeasonNotFound, showID, seasonID)
	}

	episode, ok := season.Episode(episodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s season %d episode %d", ErrEpisodeNotFound, showID, seasonID, episodeID)
	}

	fn(episode)
	return show.Clone(), nil
}

// Categories lists every populated category.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Keys(s.listings)
}

func (s *Store) lookup(category, id string) (*source.Show, error) {
	l, ok := s.listings[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q was never fetched", ErrShowNotFound, category)
	}

	show, ok := l.shows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrShowNotFound, id, category)
	}
	return show, nil
}

func (l *listing) put(show *source.Show) {
	if _, ok := l.shows[show.ID]; !ok {
		l.order = append(l.order, show.ID)
	}
	l.shows[show.ID] = show
}

func keepSeasons(prev *listing, incoming *source.Show) *source.Show {
	if prev == nil || incoming.SeasonsFetched {
		return incoming
	}
	if old, ok := prev.shows[incoming.ID]; ok && old.SeasonsFetched {
		incoming.SeasonsFetched = true
		incoming.Seasons = old.Seasons
	}
	return incoming
}
