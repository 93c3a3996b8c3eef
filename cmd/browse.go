package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/query"
	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/source"
	"github.com/anicat-cli/anicat/style"
	"github.com/anicat-cli/anicat/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.SetOut(os.Stdout)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively walk categories, shows, seasons and episodes down to a stream",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		err := newBrowser(cmd, a).run()
		if errors.Is(err, terminal.InterruptErr) {
			return
		}
		handleErr(err)
	},
}

type step int

const (
	stepCategory step = iota
	stepShow
	stepSeason
	stepEpisode
	stepSource
)

const (
	optionBack     = "← Back"
	optionMore     = "Load more…"
	optionSearch   = "Search…"
	optionWatched  = "Mark as watched"
	optionStalled  = "Source stalled, try another"
	optionNextEp   = "Next episode"
	optionQuit     = "Quit"
	browsePageSize = 20
)

type browser struct {
	cmd   *cobra.Command
	app   *app
	steps util.Stack[step]

	category string
	shows    []*source.Show
	show     *source.Show
	season   *source.Season
	episode  *source.Episode
	bad      mo.Option[int]
	result   *resolve.Result
}

func newBrowser(cmd *cobra.Command, a *app) *browser {
	b := &browser{cmd: cmd, app: a}
	b.steps.Push(stepCategory)
	return b
}

func (b *browser) run() error {
	handlers := map[step]func() (step, bool, error){
		stepCategory: b.chooseCategory,
		stepShow:     b.chooseShow,
		stepSeason:   b.chooseSeason,
		stepEpisode:  b.chooseEpisode,
		stepSource:   b.resolveSource,
	}

	for {
		current, ok := b.steps.Peek()
		if !ok {
			return nil
		}

		next, back, err := handlers[current]()
		if err != nil {
			return err
		}

		switch {
		case back:
			b.steps.Pop()
		case next != current:
			b.steps.Push(next)
		}
	}
}

// choose asks for one of options and returns its index.
func choose(message string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: browsePageSize,
	}, &index)
	return index, err
}

func (b *browser) chooseCategory() (step, bool, error) {
	categories := b.app.provider.Categories()
	options := append(lo.Map(categories, func(c source.Category, _ int) string { return c.Name }), optionSearch, optionQuit)

	index, err := choose("Category", options)
	if err != nil {
		return 0, false, err
	}

	switch options[index] {
	case optionQuit:
		return 0, true, nil
	case optionSearch:
		var q string
		if err := survey.AskOne(&survey.Input{
			Message: "Search",
			Suggest: query.Default().SuggestMany,
		}, &q, survey.WithValidator(survey.Required)); err != nil {
			return 0, false, err
		}

		b.category = source.CategorySearch
		b.shows, err = search(b.app, q)
	default:
		b.category = categories[index].Type
		b.shows, err = b.app.open(b.category, 0)
	}

	if err != nil {
		return 0, false, err
	}
	return stepShow, false, nil
}

func (b *browser) chooseShow() (step, bool, error) {
	pageable := b.category != source.CategoryBookmarks && b.category != source.CategorySearch

	options := lo.Map(b.shows, func(s *source.Show, _ int) string {
		if badges := showBadges(s); badges != "" {
			return s.Name + " " + badges
		}
		return s.Name
	})
	if pageable {
		options = append(options, optionMore)
	}
	options = append(options, optionBack)

	index, err := choose(util.Capitalize(b.category), options)
	if err != nil {
		return 0, false, err
	}

	switch options[index] {
	case optionBack:
		return 0, true, nil
	case optionMore:
		before := len(b.shows)
		if b.shows, err = b.app.open(b.category, 0); err != nil {
			return 0, false, err
		}
		if len(b.shows) == before {
			b.cmd.Println(style.Faint("no more shows in " + b.category))
		}
		return stepShow, false, nil
	}

	show, err := b.app.provider.FetchSeasons(b.app.ctx, b.app.session, b.shows[index].ID)
	if err != nil {
		return 0, false, err
	}

	b.show = show
	printShow(b.cmd, show)
	return stepSeason, false, nil
}

func (b *browser) chooseSeason() (step, bool, error) {
	if len(b.show.Seasons) == 0 {
		b.cmd.Println(style.Faint("no seasons"))
		return 0, true, nil
	}

	options := lo.Map(b.show.Seasons, func(s *source.Season, _ int) string {
		return fmt.Sprintf("%s (%s)", s.SeasonName, util.Quantify(len(s.Episodes), "episode", "episodes"))
	})
	options = append(options, optionBack)

	index, err := choose(b.show.Name, options)
	if err != nil {
		return 0, false, err
	}
	if options[index] == optionBack {
		return 0, true, nil
	}

	b.season = b.show.Seasons[index]
	return stepEpisode, false, nil
}

func (b *browser) chooseEpisode() (step, bool, error) {
	options := append(lo.Map(b.season.Episodes, func(e *source.Episode, _ int) string {
		return episodeLine(e)
	}), optionBack)

	index, err := choose(b.season.SeasonName, options)
	if err != nil {
		return 0, false, err
	}
	if options[index] == optionBack {
		return 0, true, nil
	}

	b.episode = b.season.Episodes[index]
	b.bad = mo.None[int]()
	b.result = nil
	return stepSource, false, nil
}

func (b *browser) resolveSource() (step, bool, error) {
	if b.result == nil {
		result, err := b.app.provider.FetchSources(b.app.ctx, b.app.session, b.show.ID, b.season.ID, b.episode.ID, b.bad)
		if errors.Is(err, resolve.ErrNoPlayableSource) {
			b.cmd.Printf("%s %s\n", icon.Get(icon.Fail), err)
			return 0, true, nil
		}
		if err != nil {
			return 0, false, err
		}

		b.result = result
		b.show = result.Show
		b.season, _ = b.show.Season(b.season.ID)
		printResult(b.cmd, result)
	}

	options := []string{optionWatched, optionStalled}
	if b.episode.ID+1 < len(b.season.Episodes) {
		options = append(options, optionNextEp)
	}
	options = append(options, optionBack, optionQuit)

	index, err := choose(b.episode.Name, options)
	if err != nil {
		return 0, false, err
	}

	switch options[index] {
	case optionWatched:
		if err := b.app.gateway.SetEpisodeWatched(b.app.ctx, b.show.ID, b.season.ID, b.episode.ID, true); err != nil {
			return 0, false, err
		}
		b.cmd.Printf("%s %s\n", icon.Get(icon.Watched), b.episode.Name)
	case optionStalled:
		b.bad = mo.Some(b.result.Source.ID)
		b.result = nil
		b.cmd.Printf("%s skipping source %d\n", icon.Get(icon.Stalled), b.bad.MustGet())
	case optionNextEp:
		b.episode = b.season.Episodes[b.episode.ID+1]
		b.bad = mo.None[int]()
		b.result = nil
	case optionBack:
		return 0, true, nil
	case optionQuit:
		for b.steps.Len() > 0 {
			b.steps.Pop()
		}
	}

	return stepSource, false, nil
}
