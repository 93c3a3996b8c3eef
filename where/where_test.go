package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anicat-cli/anicat/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config() honours the override variable", func() {
			custom := filepath.Join(os.TempDir(), "anicat-where-test")
			t.Setenv(EnvConfigPath, custom)

			So(Config(), ShouldEqual, custom)
			So(lo.Must(filesystem.API().IsDir(custom)), ShouldBeTrue)

			Convey("and state files live under it", func() {
				So(Preferences(), ShouldStartWith, custom)
				So(Bookmarks(), ShouldStartWith, custom)
				So(Watched(), ShouldStartWith, custom)
			})
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			t.Setenv(EnvConfigPath, filepath.Join(os.TempDir(), "anicat-where-logs"))
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
