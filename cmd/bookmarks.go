package cmd

import (
	"fmt"
	"os"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/source"
	"github.com/anicat-cli/anicat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.SetOut(os.Stdout)
}

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Short:   "Manage bookmarked shows",
	Aliases: []string{"bookmark"},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	bookmarksListCmd.SetOut(os.Stdout)
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked shows",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		shows, err := a.open(source.CategoryBookmarks, 0)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, shows)
			return
		}
		printShows(cmd, shows)
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksAddCmd)
	addMoreFlag(bookmarksAddCmd)
}

var bookmarksAddCmd = &cobra.Command{
	Use:               "add <category> <show-id>",
	Short:             "Bookmark a show of a category",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: categoryCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		_, err := a.open(args[0], moreFlag(cmd))
		handleErr(err)

		show, err := a.provider.FetchShowDescription(a.ctx, a.session, args[1])
		handleErr(err)
		handleErr(a.gateway.AddBookmark(a.ctx, show))

		fmt.Printf("%s bookmarked %s\n", style.Fg(color.Green)(icon.Get(icon.Bookmark)), style.Fg(color.Purple)(show.Name))
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksRemoveCmd)
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:     "remove <show-id>",
	Short:   "Remove a show from the bookmarks",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		bookmarks, err := a.gateway.Bookmarks(a.ctx)
		handleErr(err)
		if _, ok := bookmarks[args[0]]; !ok {
			handleErr(fmt.Errorf("%s is not bookmarked", args[0]))
		}

		handleErr(a.gateway.RemoveBookmark(a.ctx, args[0]))
		fmt.Printf("%s removed %s from bookmarks\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}
