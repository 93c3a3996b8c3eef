package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func page(offset, count int) []*source.Show {
	return lo.Times(count, func(i int) *source.Show {
		id := fmt.Sprintf("show-%d", offset+i)
		return &source.Show{ID: id, ShortName: id, Name: id}
	})
}

func ids(shows []*source.Show) []string {
	return lo.Map(shows, func(s *source.Show, _ int) string { return s.ID })
}

func TestStoreMerge(t *testing.T) {
	Convey("Given a store with a first page", t, func() {
		store := NewStore()
		So(store.Has(source.CategoryLatest), ShouldBeFalse)

		store.Replace(source.CategoryLatest, page(0, 24))
		store.SetCursor(source.CategoryLatest, 24)

		Convey("Merging more pages never drops a show", func() {
			before := ids(store.Shows(source.CategoryLatest))

			store.Merge(source.CategoryLatest, page(24, 24))
			second := ids(store.Shows(source.CategoryLatest))
			So(second, ShouldHaveLength, 48)
			for _, id := range before {
				So(second, ShouldContain, id)
			}

			store.Merge(source.CategoryLatest, page(40, 24))
			third := ids(store.Shows(source.CategoryLatest))
			So(third, ShouldHaveLength, 64)
			for _, id := range second {
				So(third, ShouldContain, id)
			}
			So(third[:48], ShouldResemble, second)
		})

		Convey("Merging keeps resolved seasons", func() {
			resolved := page(0, 1)[0]
			resolved.SeasonsFetched = true
			resolved.Seasons = []*source.Season{{ID: 0, SeasonName: "1 to 1"}}
			store.PutShow(source.CategoryLatest, resolved)

			store.Merge(source.CategoryLatest, page(0, 2))
			show, err := store.Show(source.CategoryLatest, "show-0")
			So(err, ShouldBeNil)
			So(show.SeasonsFetched, ShouldBeTrue)
			So(show.Seasons, ShouldHaveLength, 1)
		})

		Convey("Cursors are tracked per category", func() {
			cursor, ok := store.Cursor(source.CategoryLatest)
			So(ok, ShouldBeTrue)
			So(cursor, ShouldEqual, 24)

			_, ok = store.Cursor(source.CategoryPopular)
			So(ok, ShouldBeFalse)
		})

		Convey("Returned shows are copies", func() {
			show, err := store.Show(source.CategoryLatest, "show-1")
			So(err, ShouldBeNil)
			show.Name = "changed"

			again, _ := store.Show(source.CategoryLatest, "show-1")
			So(again.Name, ShouldEqual, "show-1")
		})

		Convey("Unknown shows are reported", func() {
			_, err := store.Show(source.CategoryLatest, "missing")
			So(errors.Is(err, ErrShowNotFound), ShouldBeTrue)

			_, err = store.Show(source.CategoryPopular, "show-1")
			So(errors.Is(err, ErrShowNotFound), ShouldBeTrue)
		})
	})
}

func TestStoreUpdateEpisode(t *testing.T) {
	Convey("Given a show with one episode", t, func() {
		store := NewStore()
		store.Replace(source.CategorySearch, []*source.Show{{
			ID:             "bleach",
			SeasonsFetched: true,
			Seasons: []*source.Season{{
				ID:       0,
				Episodes: []*source.Episode{{ID: 0, Sources: []*source.Source{{ID: 0}}}},
			}},
		}})

		Convey("UpdateEpisode mutates the stored record", func() {
			show, err := store.UpdateEpisode(source.CategorySearch, "bleach", 0, 0, func(e *source.Episode) {
				e.Sources[0].Stalled = true
			})
			So(err, ShouldBeNil)
			So(show.Seasons[0].Episodes[0].Sources[0].Stalled, ShouldBeTrue)

			stored, _ := store.Show(source.CategorySearch, "bleach")
			So(stored.Seasons[0].Episodes[0].Sources[0].Stalled, ShouldBeTrue)
		})

		Convey("Bad addresses are reported", func() {
			noop := func(*source.Episode) {}
			_, err := store.UpdateEpisode(source.CategorySearch, "bleach", 3, 0, noop)
			So(errors.Is(err, ErrSeasonNotFound), ShouldBeTrue)

			_, err = store.UpdateEpisode(source.CategorySearch, "bleach", 0, 9, noop)
			So(errors.Is(err, ErrEpisodeNotFound), ShouldBeTrue)
		})
	})
}

func TestOverlays(t *testing.T) {
	Convey("Given a show with two episodes", t, func() {
		show := &source.Show{
			ID: "naruto",
			Seasons: []*source.Season{{
				ID:       0,
				Episodes: []*source.Episode{{ID: 0}, {ID: 1}},
			}},
		}

		Convey("Without bookmark data nothing is bookmarked", func() {
			shows := ApplyBookmarks([]*source.Show{show}, settings.NewState())
			So(shows[0].Bookmarked, ShouldBeFalse)
		})

		Convey("Bookmarks flag matching ids only", func() {
			state := settings.NewState().Apply(settings.BookmarkAdded{
				Bookmarks: settings.Bookmarks{"naruto": {ID: "naruto"}},
			})
			other := &source.Show{ID: "bleach"}
			shows := ApplyBookmarks([]*source.Show{show, other}, state)
			So(shows[0].Bookmarked, ShouldBeTrue)
			So(shows[1].Bookmarked, ShouldBeFalse)
		})

		Convey("Progress is projected with missing entries unset", func() {
			state := settings.NewState()
			state.Watched = settings.WatchedMap{"naruto": {0: {1: true}}}
			state.Positions = settings.PositionMap{"naruto": {0: {1: 90}}}

			ApplyProgress(show, state)
			first, second := show.Seasons[0].Episodes[0], show.Seasons[0].Episodes[1]
			So(first.Watched, ShouldBeFalse)
			So(first.Progress.IsAbsent(), ShouldBeTrue)
			So(second.Watched, ShouldBeTrue)
			So(second.Progress.MustGet(), ShouldEqual, 90.0)
		})
	})
}
