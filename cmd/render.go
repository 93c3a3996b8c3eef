package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/source"
	"github.com/anicat-cli/anicat/style"
	"github.com/anicat-cli/anicat/util"
	"github.com/invopop/jsonschema"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

// maxTextWidth caps wrapped descriptions on very wide terminals.
const maxTextWidth = 100

func printJSON(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	handleErr(encoder.Encode(v))
}

func printSchema(cmd *cobra.Command, v any) {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		switch name := t.Name(); strings.ToLower(name) {
		case "show", "season", "episode", "source", "result":
			return filepath.Base(t.PkgPath()) + "." + name
		default:
			return name
		}
	}

	printJSON(cmd, reflector.Reflect(v))
}

func wrapText(text string, margin uint) string {
	width := util.Min(util.TerminalWidth(80), maxTextWidth) - int(margin)
	return indent.String(wordwrap.String(strings.TrimSpace(text), util.Max(width, 20)), margin)
}

func showBadges(show *source.Show) string {
	var badges []string
	if show.Bookmarked {
		badges = append(badges, style.Fg(color.Yellow)(icon.Get(icon.Bookmark)))
	}
	if show.Attributes.Dubbed {
		badges = append(badges, icon.Get(icon.Dubbed))
	}
	if show.Attributes.Subbed {
		badges = append(badges, icon.Get(icon.Subbed))
	}
	return strings.Join(badges, " ")
}

func printShows(cmd *cobra.Command, shows []*source.Show) {
	if len(shows) == 0 {
		cmd.Println(style.Faint("no shows"))
		return
	}

	for _, show := range shows {
		line := fmt.Sprintf("%s %s", style.Fg(color.Purple)(show.ID), show.Name)
		if badges := showBadges(show); badges != "" {
			line += " " + badges
		}
		cmd.Println(line)
	}
	cmd.Println(style.Faint(util.Quantify(len(shows), "show", "shows")))
}

func printShow(cmd *cobra.Command, show *source.Show) {
	cmd.Println(style.Title(show.Name))
	cmd.Printf("%s %s\n", style.Faint("id"), style.Fg(color.Purple)(show.ID))
	if badges := showBadges(show); badges != "" {
		cmd.Println(badges)
	}
	if show.Attributes.Rating != "" {
		cmd.Printf("%s %s\n", style.Faint("rating"), show.Attributes.Rating)
	}
	if picture, ok := show.Picture.Get(); ok {
		cmd.Printf("%s %s\n", style.Faint("poster"), picture)
	}
	if show.Description != "" {
		cmd.Println()
		cmd.Println(wrapText(show.Description, 2))
	}
}

func episodeLine(e *source.Episode) string {
	line := fmt.Sprintf("%3d %s", e.ID, e.Name)
	if e.EpisodeNumber != "" {
		line = fmt.Sprintf("%3d #%s %s", e.ID, e.EpisodeNumber, e.Name)
	}
	if e.Watched {
		line += " " + style.Fg(color.Green)(icon.Get(icon.Watched))
	}
	if progress, ok := e.Progress.Get(); ok {
		line += " " + style.Faint(fmt.Sprintf("@%.0fs", progress))
	}
	return line
}

func printSeasons(cmd *cobra.Command, show *source.Show) {
	cmd.Println(style.Title(show.Name))
	for _, season := range show.Seasons {
		cmd.Println()
		cmd.Printf("%s %s %s\n",
			style.Bold(fmt.Sprintf("%d", season.ID)),
			style.Fg(color.HiBlue)(season.SeasonName),
			style.Faint(util.Quantify(len(season.Episodes), "episode", "episodes")),
		)
		for _, episode := range season.Episodes {
			cmd.Println("  " + episodeLine(episode))
		}
	}
}

func printResult(cmd *cobra.Command, result *resolve.Result) {
	s := result.Source
	cmd.Printf("%s %s %s %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		style.Fg(color.Purple)(s.Name),
		style.Faint(s.Language),
		style.Fg(color.Yellow)(s.Quality),
	)
	cmd.Println(s.URL)
}
