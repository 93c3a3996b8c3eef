package query

import (
	"testing"

	"github.com/anicat-cli/anicat/filesystem"
	"github.com/anicat-cli/anicat/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		history := NewHistory("/cache/queries.json")
		So(history.Clear(), ShouldBeNil)

		So(history.Remember("naruto", 1), ShouldBeNil)
		So(history.Remember("  BLEACH ", 10), ShouldBeNil)
		So(history.Remember("blue lock", 2), ShouldBeNil)

		Convey("Suggestions are sorted by rank", func() {
			s := history.SuggestMany("bl")
			So(s, ShouldResemble, []string{"bleach", "blue lock"})
			So(history.Suggest("nar").MustGet(), ShouldEqual, "naruto")
		})

		Convey("Remembering again raises the rank", func() {
			So(history.SuggestMany("bl")[0], ShouldEqual, "bleach")
			So(history.Remember("blue lock", 20), ShouldBeNil)
			So(history.SuggestMany("bl")[0], ShouldEqual, "blue lock")
		})

		Convey("Nothing matches an unrelated query", func() {
			So(history.Suggest("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Suggestions can be disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(history.SuggestMany("bl"), ShouldBeEmpty)
		})

		Convey("Blank queries are not remembered", func() {
			So(history.Remember("   ", 5), ShouldBeNil)
			So(history.SuggestMany(""), ShouldHaveLength, 3)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Rank puts the closest names first", t, func() {
		names := []string{"Naruto Shippuden", "Boruto", "Naruto"}
		ranked := Rank("naruto", names, func(s string) string { return s })
		So(ranked, ShouldResemble, []string{"Naruto", "Boruto", "Naruto Shippuden"})
		So(names[0], ShouldEqual, "Naruto Shippuden")
	})
}
