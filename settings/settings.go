// Package settings defines the Settings Gateway consumed by providers: user
// preferences, watched flags, playback positions and bookmarks, plus the
// typed change events a provider folds into its cached copy.
package settings

import (
	"context"

	"github.com/anicat-cli/anicat/source"
	"github.com/samber/mo"
)

// Preferences are the user choices driving source selection.
type Preferences struct {
	// Language is matched exactly against Source.Language ("subs", "dubs").
	Language string `json:"language"`
	// Quality is the preferred bitrate.
	Quality int `json:"quality"`
}

// DefaultPreferences are used until the user saves their own.
func DefaultPreferences() Preferences {
	return Preferences{
		Language: "dubs",
		Quality:  5000000,
	}
}

// WatchedMap is keyed by show id, season id, then episode id.
type WatchedMap map[string]map[int]map[int]bool

// Lookup returns the watched flag of an episode; missing entries are false.
func (w WatchedMap) Lookup(showID string, seasonID, episodeID int) bool {
	return w[showID][seasonID][episodeID]
}

// PositionMap holds playback positions in seconds, keyed like WatchedMap.
type PositionMap map[string]map[int]map[int]float64

// Lookup returns the saved position of an episode, if any.
func (p PositionMap) Lookup(showID string, seasonID, episodeID int) mo.Option[float64] {
	pos, ok := p[showID][seasonID][episodeID]
	if !ok {
		return mo.None[float64]()
	}
	return mo.Some(pos)
}

// Bookmarks maps show ids to the bookmarked shows.
type Bookmarks map[string]*source.Show

// Gateway is the system of record for user state.
type Gateway interface {
	Settings(ctx context.Context) (Preferences, error)
	Watched(ctx context.Context) (WatchedMap, error)
	CurrentPositions(ctx context.Context) (PositionMap, error)
	Bookmarks(ctx context.Context) (Bookmarks, error)
}
