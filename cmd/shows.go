package cmd

import (
	"os"

	"github.com/anicat-cli/anicat/query"
	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showsCmd)

	addMoreFlag(showsCmd)
	showsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	showsCmd.Flags().Bool("schema", false, "Print the JSON schema of the output and exit")
	showsCmd.SetOut(os.Stdout)
}

var showsCmd = &cobra.Command{
	Use:               "shows [category]",
	Short:             "List the shows of a category",
	Long:              "List the shows of a category: latest, popular or bookmarks.\nEvery additional page requested with --more appends to the listing until the provider limit.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: categoryCompletion,
	Example:           "  anicat shows popular --more 2",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			printSchema(cmd, []*source.Show{})
			return
		}

		category := source.CategoryLatest
		if len(args) > 0 {
			category = args[0]
		}

		a := mustApp()
		defer a.Close()

		shows, err := a.open(category, moreFlag(cmd))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, shows)
			return
		}
		printShows(cmd, shows)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long:  "Search the catalog. Results closest to the query come first and the query is remembered for suggestions.",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.Default().SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		shows, err := search(a, args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, shows)
			return
		}
		printShows(cmd, shows)
	},
}

func search(a *app, q string) ([]*source.Show, error) {
	shows, err := a.provider.SearchShows(a.ctx, a.session, q)
	if err != nil {
		return nil, err
	}

	if len(shows) > 0 {
		_ = query.Default().Remember(q, 1)
	}

	return query.Rank(q, shows, func(s *source.Show) string { return s.Name }), nil
}

func init() {
	rootCmd.AddCommand(showCmd)

	addMoreFlag(showCmd)

	showCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	showCmd.SetOut(os.Stdout)
}

var showCmd = &cobra.Command{
	Use:               "show <category> <show-id>",
	Short:             "Describe a show",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: categoryCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		_, err := a.open(args[0], moreFlag(cmd))
		handleErr(err)

		show, err := a.provider.FetchShowDescription(a.ctx, a.session, args[1])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, show)
			return
		}
		printShow(cmd, show)
	},
}

func init() {
	rootCmd.AddCommand(seasonsCmd)

	addMoreFlag(seasonsCmd)

	seasonsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	seasonsCmd.SetOut(os.Stdout)
}

var seasonsCmd = &cobra.Command{
	Use:               "seasons <category> <show-id>",
	Short:             "List the seasons and episodes of a show",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: categoryCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		_, err := a.open(args[0], moreFlag(cmd))
		handleErr(err)

		show, err := a.provider.FetchSeasons(a.ctx, a.session, args[1])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, show)
			return
		}
		printSeasons(cmd, show)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	addMoreFlag(sourcesCmd)

	sourcesCmd.Flags().IntP("bad", "b", -1, "Id of a source that failed to play")
	sourcesCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	sourcesCmd.Flags().Bool("schema", false, "Print the JSON schema of the output and exit")
	sourcesCmd.SetOut(os.Stdout)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources <category> <show-id> <season> <episode>",
	Short: "Resolve a playable stream of an episode",
	Long: `Resolve a playable stream of an episode.

Sources in the preferred language are tried first. Sources the provider no
longer serves are skipped. Pass --bad with the id of a source that stalled
during playback to pick another one.`,
	Args:              cobra.RangeArgs(0, 4),
	ValidArgsFunction: categoryCompletion,
	Example:           "  anicat sources latest one-piece 0 3",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			printSchema(cmd, &resolve.Result{})
			return
		}
		handleErr(cobra.ExactArgs(4)(cmd, args))

		var (
			seasonID  = intArg(args, 2, "season")
			episodeID = intArg(args, 3, "episode")
			bad       = mo.None[int]()
		)
		if cmd.Flags().Changed("bad") {
			bad = mo.Some(lo.Must(cmd.Flags().GetInt("bad")))
		}

		a := mustApp()
		defer a.Close()

		_, err := a.open(args[0], moreFlag(cmd))
		handleErr(err)

		_, err = a.provider.FetchSeasons(a.ctx, a.session, args[1])
		handleErr(err)

		result, err := a.provider.FetchSources(a.ctx, a.session, args[1], seasonID, episodeID, bad)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, result)
			return
		}
		printResult(cmd, result)
	},
}
