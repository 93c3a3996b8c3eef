package cmd

import (
	"testing"

	"github.com/anicat-cli/anicat/config"
	"github.com/anicat-cli/anicat/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given registered config fields", t, func() {
		Convey("ints are parsed", func() {
			v, err := parseValue(config.Default[key.ProviderPageSize], []string{"12"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 12)
		})

		Convey("bools are parsed", func() {
			v, err := parseValue(config.Default[key.LogsWrite], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("malformed values are rejected", func() {
			_, err := parseValue(config.Default[key.HTTPRateLimit], []string{"fast"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.HTTPRateLimit)
		})

		Convey("a missing value is rejected", func() {
			_, err := parseValue(config.Default[key.ProviderPageSize], nil)
			So(err, ShouldNotBeNil)
		})

		Convey("the default provider must be registered", func() {
			v, err := parseValue(config.Default[key.ProviderDefault], []string{"wonderfulsubs"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "wonderfulsubs")

			_, err = parseValue(config.Default[key.ProviderDefault], []string{"nowhere"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("An unknown key suggests the closest registered one", t, func() {
		err := errUnknownKey("provider.page_sise")
		So(err.Error(), ShouldContainSubstring, key.ProviderPageSize)
	})
}
