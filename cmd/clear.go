package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/anicat-cli/anicat/filesystem"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/query"
	"github.com/anicat-cli/anicat/util"
	"github.com/anicat-cli/anicat/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a persisted artifact that can be wiped.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

func removeFile(path func() string) func() error {
	return func() error {
		err := filesystem.API().Remove(path())
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), func() error { return filesystem.API().RemoveAll(where.Cache()) }},
	{"queries history", "queries", mo.Some("q"), func() error { return query.Default().Clear() }},
	{"watched history", "watched", mo.Some("w"), removeFile(where.Watched)},
	{"bookmarks", "bookmarks", mo.Some("b"), removeFile(where.Bookmarks)},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd wipes cached and persisted artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached and persisted application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if lo.Must(cmd.Flags().GetBool(target.argLong)) {
				anyCleared = true
				handleErr(target.clear())
				fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
			}
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
