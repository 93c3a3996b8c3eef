package cmd

import (
	"fmt"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchedCmd)
}

var watchedCmd = &cobra.Command{
	Use:   "watched",
	Short: "Manage watched flags and playback positions",
}

func init() {
	watchedCmd.AddCommand(watchedSetCmd)
	watchedSetCmd.Flags().BoolP("unwatched", "u", false, "Clear the watched flag instead of setting it")
	watchedSetCmd.Flags().Float64P("position", "P", -1, "Save a playback position in seconds instead of the watched flag")
}

var watchedSetCmd = &cobra.Command{
	Use:     "set <show-id> <season> <episode>",
	Short:   "Mark an episode as watched or save its playback position",
	Args:    cobra.ExactArgs(3),
	Example: "  anicat watched set one-piece 0 3\n  anicat watched set one-piece 0 4 --position 312",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			showID    = args[0]
			seasonID  = intArg(args, 1, "season")
			episodeID = intArg(args, 2, "episode")
		)

		a := mustApp()
		defer a.Close()

		if cmd.Flags().Changed("position") {
			position := lo.Must(cmd.Flags().GetFloat64("position"))
			if position < 0 {
				handleErr(fmt.Errorf("position must not be negative"))
			}

			handleErr(a.gateway.SetEpisodeCurrentPosition(a.ctx, showID, seasonID, episodeID, position))
			fmt.Printf("%s saved position %.0fs\n", style.Fg(color.Green)(icon.Get(icon.Success)), position)
			return
		}

		finished := !lo.Must(cmd.Flags().GetBool("unwatched"))
		handleErr(a.gateway.SetEpisodeWatched(a.ctx, showID, seasonID, episodeID, finished))

		state := "watched"
		if !finished {
			state = "unwatched"
		}
		fmt.Printf("%s marked %s %d/%d as %s\n", style.Fg(color.Green)(icon.Get(icon.Watched)), style.Fg(color.Purple)(showID), seasonID, episodeID, state)
	},
}
