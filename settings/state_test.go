package settings

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type stubGateway struct {
	prefs     Preferences
	watched   WatchedMap
	positions PositionMap
	bookmarks Bookmarks
	err       error
}

func (g *stubGateway) Settings(context.Context) (Preferences, error) { return g.prefs, g.err }
func (g *stubGateway) Watched(context.Context) (WatchedMap, error)   { return g.watched, nil }
func (g *stubGateway) CurrentPositions(context.Context) (PositionMap, error) {
	return g.positions, nil
}
func (g *stubGateway) Bookmarks(context.Context) (Bookmarks, error) { return g.bookmarks, nil }

func TestLoad(t *testing.T) {
	Convey("Given a gateway", t, func() {
		gw := &stubGateway{
			prefs:   Preferences{Language: "subs", Quality: 1},
			watched: WatchedMap{"naruto": {0: {3: true}}},
		}

		Convey("Load copies every part", func() {
			state, err := Load(context.Background(), gw)
			So(err, ShouldBeNil)
			So(state.Preferences.Language, ShouldEqual, "subs")
			So(state.Watched.Lookup("naruto", 0, 3), ShouldBeTrue)
			So(state.Bookmarks, ShouldNotBeNil)
			So(state.IsBookmarked("naruto"), ShouldBeFalse)
		})

		Convey("Load surfaces gateway failures", func() {
			gw.err = errors.New("offline")
			_, err := Load(context.Background(), gw)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLookups(t *testing.T) {
	Convey("Missing entries never fail", t, func() {
		var watched WatchedMap
		var positions PositionMap
		So(watched.Lookup("x", 1, 2), ShouldBeFalse)
		So(positions.Lookup("x", 1, 2).IsAbsent(), ShouldBeTrue)

		positions = PositionMap{"x": {1: {2: 42.5}}}
		So(positions.Lookup("x", 1, 2).MustGet(), ShouldEqual, 42.5)
	})
}

func TestApply(t *testing.T) {
	Convey("Given a state", t, func() {
		state := NewState()
		So(state.Preferences, ShouldResemble, DefaultPreferences())

		Convey("SettingsUpdated replaces the preferences", func() {
			next := state.Apply(SettingsUpdated{Settings: Preferences{Language: "subs"}})
			So(next.Preferences.Language, ShouldEqual, "subs")
			So(state.Preferences.Language, ShouldEqual, "dubs")
		})

		Convey("Bookmark events replace the set with a copy", func() {
			bookmarks := Bookmarks{"bleach": {ID: "bleach", Name: "Bleach"}}
			next := state.Apply(BookmarkAdded{Bookmarks: bookmarks})
			So(next.IsBookmarked("bleach"), ShouldBeTrue)

			bookmarks["bleach"].Name = "changed"
			So(next.Bookmarks["bleach"].Name, ShouldEqual, "Bleach")

			next = next.Apply(BookmarkRemoved{Bookmarks: Bookmarks{}})
			So(next.IsBookmarked("bleach"), ShouldBeFalse)
		})

		Convey("EpisodeWatched without a map sets a single entry without touching the previous state", func() {
			state.Watched = WatchedMap{"bleach": {0: {0: true}}}
			next := state.Apply(EpisodeWatched{ShowID: "bleach", SeasonID: 0, EpisodeID: 1, Finished: true})
			So(next.Watched.Lookup("bleach", 0, 0), ShouldBeTrue)
			So(next.Watched.Lookup("bleach", 0, 1), ShouldBeTrue)
			So(state.Watched.Lookup("bleach", 0, 1), ShouldBeFalse)
		})

		Convey("EpisodeWatched with a map replaces it", func() {
			next := state.Apply(EpisodeWatched{Watched: WatchedMap{"a": {1: {1: true}}}})
			So(next.Watched.Lookup("a", 1, 1), ShouldBeTrue)
		})

		Convey("EpisodeCurrentPosition replaces the positions", func() {
			next := state.Apply(EpisodeCurrentPosition{Positions: PositionMap{"a": {0: {0: 12}}}})
			So(next.Positions.Lookup("a", 0, 0).MustGet(), ShouldEqual, 12.0)
		})

		Convey("nil events are ignored", func() {
			So(state.Apply(nil), ShouldResemble, state)
		})
	})
}
