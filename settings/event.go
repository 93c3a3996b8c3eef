package settings

import (
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
)

// Event is a change notification published by a gateway. The set of events
// is closed; each one knows how to fold itself into a State.
type Event interface {
	// Name is the notification name, used for logging.
	Name() string
	apply(State) State
}

// SettingsUpdated replaces the preferences.
type SettingsUpdated struct {
	Settings Preferences
}

func (SettingsUpdated) Name() string { return "settingsUpdated" }

func (e SettingsUpdated) apply(s State) State {
	s.Preferences = e.Settings
	return s
}

// BookmarkAdded carries the complete bookmark set after an addition.
type BookmarkAdded struct {
	Bookmarks Bookmarks
}

func (BookmarkAdded) Name() string { return "bookmarkAdded" }

func (e BookmarkAdded) apply(s State) State {
	s.Bookmarks = cloneBookmarks(e.Bookmarks)
	return s
}

// BookmarkRemoved carries the complete bookmark set after a removal.
type BookmarkRemoved struct {
	Bookmarks Bookmarks
}

func (BookmarkRemoved) Name() string { return "bookmarkRemoved" }

func (e BookmarkRemoved) apply(s State) State {
	s.Bookmarks = cloneBookmarks(e.Bookmarks)
	return s
}

// EpisodeWatched flags one episode. When Watched is set it is the complete
// watched map and replaces the cached one.
type EpisodeWatched struct {
	ShowID    string
	SeasonID  int
	EpisodeID int
	Finished  bool
	Watched   WatchedMap
}

func (EpisodeWatched) Name() string { return "setEpisodeWatched" }

func (e EpisodeWatched) apply(s State) State {
	if e.Watched != nil {
		s.Watched = cloneNested(e.Watched)
		return s
	}
	s.Watched = setNested(cloneNested(s.Watched), e.ShowID, e.SeasonID, e.EpisodeID, e.Finished)
	return s
}

// EpisodeCurrentPosition carries the complete position map.
type EpisodeCurrentPosition struct {
	Positions PositionMap
}

func (EpisodeCurrentPosition) Name() string { return "setEpisodeCurrentPosition" }

func (e EpisodeCurrentPosition) apply(s State) State {
	s.Positions = cloneNested(e.Positions)
	return s
}

func cloneBookmarks(b Bookmarks) Bookmarks {
	if b == nil {
		return Bookmarks{}
	}
	return lo.MapValues(b, func(show *source.Show, _ string) *source.Show {
		return show.Clone()
	})
}
