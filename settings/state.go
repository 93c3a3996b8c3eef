package settings

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// State is a provider's cached copy of the gateway. It is only ever replaced
// through Load and Apply, never mutated in place.
type State struct {
	Preferences Preferences
	Watched     WatchedMap
	Positions   PositionMap
	// Bookmarks is nil until loaded from the gateway or delivered by an event.
	Bookmarks Bookmarks
}

// NewState returns the state used before the gateway has been queried.
func NewState() State {
	return State{Preferences: DefaultPreferences()}
}

// Load queries every part of the gateway.
func Load(ctx context.Context, gw Gateway) (State, error) {
	prefs, err := gw.Settings(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load settings: %w", err)
	}

	watched, err := gw.Watched(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load watched: %w", err)
	}

	positions, err := gw.CurrentPositions(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load positions: %w", err)
	}

	bookmarks, err := gw.Bookmarks(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = Bookmarks{}
	}

	return State{
		Preferences: prefs,
		Watched:     watched,
		Positions:   positions,
		Bookmarks:   bookmarks,
	}, nil
}

// Apply merges ev into a copy of s.
func (s State) Apply(ev Event) State {
	if ev == nil {
		return s
	}
	return ev.apply(s)
}

// IsBookmarked reports whether the show id is in the bookmark set.
func (s State) IsBookmarked(id string) bool {
	return s.Bookmarks != nil && s.Bookmarks[id] != nil
}

func cloneNested[V any](m map[string]map[int]map[int]V) map[string]map[int]map[int]V {
	if m == nil {
		return nil
	}
	out := make(map[string]map[int]map[int]V, len(m))
	for show, seasons := range m {
		out[show] = make(map[int]map[int]V, len(seasons))
		for season, episodes := range seasons {
			out[show][season] = lo.Assign(episodes)
		}
	}
	return out
}

func setNested[V any](m map[string]map[int]map[int]V, showID string, seasonID, episodeID int, v V) map[string]map[int]map[int]V {
	if m == nil {
		m = make(map[string]map[int]map[int]V)
	}
	if m[showID] == nil {
		m[showID] = make(map[int]map[int]V)
	}
	if m[showID][seasonID] == nil {
		m[showID][seasonID] = make(map[int]V)
	}
	m[showID][seasonID][episodeID] = v
	return m
}
