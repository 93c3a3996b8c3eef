package settings

import (
	"context"
	"sync"

	"github.com/anicat-cli/anicat/filesystem"
	"github.com/anicat-cli/anicat/log"
	"github.com/anicat-cli/anicat/source"
	"github.com/anicat-cli/anicat/where"
	"github.com/metafates/gache"
)

// subscriberBuffer bounds the events queued for a slow subscriber before publishing blocks.
const subscriberBuffer = 16

type progressData struct {
	Watched   WatchedMap  `json:"watched"`
	Positions PositionMap `json:"positions"`
}

// Local is a Gateway persisted under the configuration directory. Every
// mutation is written to disk, then published to subscribers.
type Local struct {
	preferences *gache.Cache[*Preferences]
	bookmarks   *gache.Cache[Bookmarks]
	progress    *gache.Cache[*progressData]

	// writeMu serializes read-modify-write cycles of the persisted maps.
	writeMu sync.Mutex

	mu          sync.Mutex
	subscribers []chan Event
}

// NewLocal opens the gateway files at their default locations.
func NewLocal() *Local {
	return NewLocalAt(where.Preferences(), where.Bookmarks(), where.Watched())
}

// NewLocalAt opens the gateway files at explicit paths.
func NewLocalAt(preferencesPath, bookmarksPath, watchedPath string) *Local {
	return &Local{
		preferences: gache.New[*Preferences](&gache.Options{
			Path:       preferencesPath,
			FileSystem: &filesystem.GacheFs{},
		}),
		bookmarks: gache.New[Bookmarks](&gache.Options{
			Path:       bookmarksPath,
			FileSystem: &filesystem.GacheFs{},
		}),
		progress: gache.New[*progressData](&gache.Options{
			Path:       watchedPath,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (l *Local) Settings(context.Context) (Preferences, error) {
	cached, expired, err := l.preferences.Get()
	if err != nil {
		return Preferences{}, err
	}
	if expired || cached == nil {
		return DefaultPreferences(), nil
	}
	return *cached, nil
}

func (l *Local) Watched(context.Context) (WatchedMap, error) {
	data, err := l.loadProgress()
	if err != nil {
		return nil, err
	}
	return data.Watched, nil
}

func (l *Local) CurrentPositions(context.Context) (PositionMap, error) {
	data, err := l.loadProgress()
	if err != nil {
		return nil, err
	}
	return data.Positions, nil
}

func (l *Local) Bookmarks(context.Context) (Bookmarks, error) {
	cached, expired, err := l.bookmarks.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return Bookmarks{}, nil
	}
	return cloneBookmarks(cached), nil
}

func (l *Local) loadProgress() (*progressData, error) {
	cached, expired, err := l.progress.Get()
	if err != nil {
		return nil, err
	}
	data := &progressData{Watched: WatchedMap{}, Positions: PositionMap{}}
	if expired || cached == nil {
		return data, nil
	}
	if cached.Watched != nil {
		data.Watched = cloneNested(cached.Watched)
	}
	if cached.Positions != nil {
		data.Positions = cloneNested(cached.Positions)
	}
	return data, nil
}

// SetPreferences saves the preferences and publishes SettingsUpdated.
func (l *Local) SetPreferences(ctx context.Context, prefs Preferences) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.preferences.Set(&prefs); err != nil {
		return err
	}
	return l.publish(ctx, SettingsUpdated{Settings: prefs})
}

// AddBookmark saves the show without its resolved seasons and publishes BookmarkAdded.
func (l *Local) AddBookmark(ctx context.Context, show *source.Show) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	bookmarks, err := l.Bookmarks(ctx)
	if err != nil {
		return err
	}

	stored := show.Clone()
	stored.Seasons = nil
	stored.SeasonsFetched = false
	stored.Bookmarked = true
	bookmarks[stored.ID] = stored

	if err := l.bookmarks.Set(bookmarks); err != nil {
		return err
	}
	return l.publish(ctx, BookmarkAdded{Bookmarks: cloneBookmarks(bookmarks)})
}

// RemoveBookmark deletes the show id from the bookmarks and publishes BookmarkRemoved.
func (l *Local) RemoveBookmark(ctx context.Context, showID string) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	bookmarks, err := l.Bookmarks(ctx)
	if err != nil {
		return err
	}

	delete(bookmarks, showID)
	if err := l.bookmarks.Set(bookmarks); err != nil {
		return err
	}
	return l.publish(ctx, BookmarkRemoved{Bookmarks: cloneBookmarks(bookmarks)})
}

// SetEpisodeWatched flags an episode and publishes EpisodeWatched.
func (l *Local) SetEpisodeWatched(ctx context.Context, showID string, seasonID, episodeID int, finished bool) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	data, err := l.loadProgress()
	if err != nil {
		return err
	}

	data.Watched = setNested(data.Watched, showID, seasonID, episodeID, finished)
	if err := l.progress.Set(data); err != nil {
		return err
	}
	return l.publish(ctx, EpisodeWatched{
		ShowID:    showID,
		SeasonID:  seasonID,
		EpisodeID: episodeID,
		Finished:  finished,
		Watched:   cloneNested(data.Watched),
	})
}

// SetEpisodeCurrentPosition saves a playback position and publishes EpisodeCurrentPosition.
func (l *Local) SetEpisodeCurrentPosition(ctx context.Context, showID string, seasonID, episodeID int, position float64) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	data, err := l.loadProgress()
	if err != nil {
		return err
	}

	data.Positions = setNested(data.Positions, showID, seasonID, episodeID, position)
	if err := l.progress.Set(data); err != nil {
		return err
	}
	return l.publish(ctx, EpisodeCurrentPosition{Positions: cloneNested(data.Positions)})
}

// Subscribe returns a channel receiving every event published after the call.
// The channel is closed by Close.
func (l *Local) Subscribe() <-chan Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	l.subscribers = append(l.subscribers, ch)
	return ch
}

// Close closes every subscriber channel.
func (l *Local) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ch := range l.subscribers {
		close(ch)
	}
	l.subscribers = nil
}

func (l *Local) publish(ctx context.Context, ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	log.Debugf("publishing %s to %d subscribers", ev.Name(), len(l.subscribers))
	for _, ch := range l.subscribers {
		select {
		case ch <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
