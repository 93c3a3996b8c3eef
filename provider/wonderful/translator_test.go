package wonderful

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func flatSeries(n int) *detailEnvelope {
	var envelope detailEnvelope
	raw := fmt.Sprintf(`{"json":{"seasons":{"ws":{"media":[{"type":"episodes","episodes":[%s]}]}}}}`,
		strings.Join(lo.Times(n, func(i int) string {
			return fmt.Sprintf(`{"title":"Episode %d","episode_number":%d,"retrieve_url":"/r/%d"}`, i+1, i+1, i)
		}), ","))
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		panic(err)
	}
	return &envelope
}

func TestShowShortName(t *testing.T) {
	Convey("showShortName", t, func() {
		Convey("Should take everything after the watch marker", func() {
			name, err := showShortName("https://www.wonderfulsubs.com/watch/one-piece")
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "one-piece")
		})

		Convey("Should fail without a marker", func() {
			_, err := showShortName("https://example.com/one-piece")
			var translationErr *source.TranslationError
			So(errors.As(err, &translationErr), ShouldBeTrue)
			So(translationErr.Field, ShouldEqual, "url")

			_, err = showShortName("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestIndexOrGoodEnough(t *testing.T) {
	Convey("indexOrGoodEnough", t, func() {
		images := []image{{Source: "a"}, {Source: "b"}, {Source: "c"}}

		So(indexOrGoodEnough(images, 1).MustGet(), ShouldEqual, "b")
		So(indexOrGoodEnough(images, 2).MustGet(), ShouldEqual, "c")
		So(indexOrGoodEnough(images, 4).MustGet(), ShouldEqual, "c")
		So(indexOrGoodEnough(images[:1], 2).MustGet(), ShouldEqual, "a")
		So(indexOrGoodEnough(nil, 0).IsAbsent(), ShouldBeTrue)
	})
}

func TestTranslateShows(t *testing.T) {
	Convey("translateShows", t, func() {
		Convey("Should translate the series list", func() {
			var envelope seriesEnvelope
			raw := `{"json":{"series":[{
				"url":"/watch/bleach","title":"Bleach","description":"Soul reapers",
				"poster_tall":[{"source":"t0"},{"source":"t1"},{"source":"t2"},{"source":"t3"}],
				"poster_wide":[{"source":"w0"},{"source":"w1"}],
				"is_dubbed":true,"is_subbed":true,"rating":8.5}]}}`
			So(json.Unmarshal([]byte(raw), &envelope), ShouldBeNil)

			shows, err := translateShows(&envelope, ID)
			So(err, ShouldBeNil)
			So(shows, ShouldHaveLength, 1)

			show := shows[0]
			So(show.ID, ShouldEqual, "bleach")
			So(show.ShortName, ShouldEqual, "bleach")
			So(show.Provider, ShouldEqual, ID)
			So(show.Picture.MustGet(), ShouldEqual, "t2")
			So(show.WallArt.MustGet(), ShouldEqual, "w1")
			So(show.Attributes, ShouldResemble, source.ShowAttributes{Dubbed: true, Subbed: true, Rating: "8.5"})
			So(show.SeasonsFetched, ShouldBeFalse)
		})

		Convey("Should reject a payload without json", func() {
			_, err := translateShows(&seriesEnvelope{}, ID)
			var translationErr *source.TranslationError
			So(errors.As(err, &translationErr), ShouldBeTrue)
			So(translationErr.Field, ShouldEqual, "json")
		})
	})
}

func TestTranslateSeasons(t *testing.T) {
	Convey("translateSeasons", t, func() {
		Convey("Should chunk 120 flat episodes into three seasons", func() {
			seasons, err := translateSeasons(flatSeries(120), 50)
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 3)

			names := lo.Map(seasons, func(s *source.Season, _ int) string { return s.SeasonName })
			So(names, ShouldResemble, []string{"1 to 50", "51 to 100", "101 to 120"})
			So(seasons[2].Episodes, ShouldHaveLength, 20)
			So(seasons[2].ID, ShouldEqual, 2)
			So(seasons[1].Episodes[0].EpisodeNumber, ShouldEqual, "51")
			So(seasons[1].Episodes[0].ID, ShouldEqual, 0)
		})

		Convey("Should keep a short list as one season", func() {
			seasons, err := translateSeasons(flatSeries(12), 50)
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 1)
			So(seasons[0].SeasonName, ShouldEqual, "1 to 12")
		})

		Convey("Should map groups to seasons", func() {
			var envelope detailEnvelope
			raw := `{"json":{"seasons":{"ws":{"media":[
				{"type":"episodes","title":"Season 1","episodes":[{"title":"a"}]},
				{"type":"specials","title":"OVA","episodes":[{"title":"b"},{"title":"c"}]}]}}}}`
			So(json.Unmarshal([]byte(raw), &envelope), ShouldBeNil)

			seasons, err := translateSeasons(&envelope, 50)
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 2)
			So(seasons[1].SeasonName, ShouldEqual, "OVA")
			So(seasons[1].Type, ShouldEqual, source.SeasonType("specials"))
			So(seasons[1].Episodes, ShouldHaveLength, 2)
		})

		Convey("Should name the missing field", func() {
			var envelope detailEnvelope
			So(json.Unmarshal([]byte(`{"json":{"seasons":{}}}`), &envelope), ShouldBeNil)

			_, err := translateSeasons(&envelope, 50)
			var translationErr *source.TranslationError
			So(errors.As(err, &translationErr), ShouldBeTrue)
			So(translationErr.Field, ShouldEqual, "json.seasons.ws")
		})
	})
}

func TestStubSources(t *testing.T) {
	Convey("stubSources", t, func() {
		Convey("Should stub a single unknown source for a direct retrieval url", func() {
			var e apiEpisode
			So(json.Unmarshal([]byte(`{"retrieve_url":["/first","/second"]}`), &e), ShouldBeNil)

			sources, attributes := stubSources(&e)
			So(sources, ShouldHaveLength, 1)
			So(sources[0].Name, ShouldEqual, "unk")
			So(sources[0].Language, ShouldEqual, "unk")
			So(sources[0].FetchURL, ShouldEqual, "/first")
			So(attributes, ShouldResemble, source.EpisodeAttributes{})
		})

		Convey("Should flatten every retrieval url with unique ids", func() {
			var e apiEpisode
			raw := `{"sources":[
				{"source":"fembed","language":"subs","retrieve_url":["/s1","/s2"]},
				{"source":"cdn","language":"dubs","retrieve_url":"/d1"},
				{"source":"raw","language":"Subs","retrieve_url":"/x"}]}`
			So(json.Unmarshal([]byte(raw), &e), ShouldBeNil)

			sources, attributes := stubSources(&e)
			So(sources, ShouldHaveLength, 4)
			So(lo.Map(sources, func(s *source.Source, _ int) int { return s.ID }), ShouldResemble, []int{0, 1, 2, 3})
			So(sources[1].FetchURL, ShouldEqual, "/s2")
			So(sources[2].Language, ShouldEqual, "dubs")
			So(attributes, ShouldResemble, source.EpisodeAttributes{Dubbed: true, Subbed: true})
			So(sources[0].SourcesFetched, ShouldBeFalse)
		})

		Convey("Only exact language values set attributes", func() {
			var e apiEpisode
			So(json.Unmarshal([]byte(`{"sources":[{"source":"raw","language":"Subs","retrieve_url":"/x"}]}`), &e), ShouldBeNil)

			_, attributes := stubSources(&e)
			So(attributes.Subbed, ShouldBeFalse)
		})
	})
}

func TestTranslateStream(t *testing.T) {
	Convey("translateStream", t, func() {
		Convey("Should pick the last url", func() {
			var envelope streamEnvelope
			raw := `{"status":200,"urls":[{"src":"low","label":"360p"},{"src":"high","label":"1080p"}]}`
			So(json.Unmarshal([]byte(raw), &envelope), ShouldBeNil)

			stream, err := translateStream(&envelope)
			So(err, ShouldBeNil)
			So(stream.URL, ShouldEqual, "high")
			So(stream.Quality, ShouldEqual, "1080p")
		})

		Convey("Should fail on an empty list", func() {
			_, err := translateStream(&streamEnvelope{})
			var translationErr *source.TranslationError
			So(errors.As(err, &translationErr), ShouldBeTrue)
			So(translationErr.Field, ShouldEqual, "urls")
		})

		Convey("Should fail when the best entry has no src", func() {
			var envelope streamEnvelope
			raw := `{"status":200,"urls":[{"src":"","label":""}]}`
			So(json.Unmarshal([]byte(raw), &envelope), ShouldBeNil)

			stream, err := translateStream(&envelope)
			var translationErr *source.TranslationError
			So(errors.As(err, &translationErr), ShouldBeTrue)
			So(translationErr.Field, ShouldEqual, "urls.src")
			So(stream.URL, ShouldBeEmpty)
		})

		Convey("Should label a stream without quality as unknown", func() {
			var envelope streamEnvelope
			raw := `{"status":200,"urls":[{"src":"only"}]}`
			So(json.Unmarshal([]byte(raw), &envelope), ShouldBeNil)

			stream, err := translateStream(&envelope)
			So(err, ShouldBeNil)
			So(stream.Quality, ShouldEqual, unknown)
		})

		Convey("Should decode a textual status", func() {
			var envelope streamEnvelope
			So(json.Unmarshal([]byte(`{"status":"error"}`), &envelope), ShouldBeNil)
			So(string(envelope.Status), ShouldEqual, "error")

			So(json.Unmarshal([]byte(`{"status":404}`), &envelope), ShouldBeNil)
			So(string(envelope.Status), ShouldEqual, "404")
		})
	})
}
