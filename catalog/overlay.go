package catalog

import (
	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/source"
)

// ApplyBookmarks sets every show's Bookmarked flag from the bookmark set.
// Without bookmark data nothing is bookmarked.
func ApplyBookmarks(shows []*source.Show, state settings.State) []*source.Show {
	for _, show := range shows {
		show.Bookmarked = state.IsBookmarked(show.ID)
	}
	return shows
}

// ApplyProgress projects the watched flags and playback positions onto the
// show's episodes. Missing entries leave an episode unwatched and without
// progress.
func ApplyProgress(show *source.Show, state settings.State) *source.Show {
	show.Bookmarked = state.IsBookmarked(show.ID)
	for _, season := range show.Seasons {
		for _, episode := range season.Episodes {
			episode.Watched = state.Watched.Lookup(show.ID, season.ID, episode.ID)
			episode.Progress = state.Positions.Lookup(show.ID, season.ID, episode.ID)
		}
	}
	return show
}
