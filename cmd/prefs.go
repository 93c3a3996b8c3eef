package cmd

import (
	"fmt"
	"os"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	prefsCmd.SetOut(os.Stdout)
}

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Short:   "Show the playback preferences used to pick sources",
	Aliases: []string{"preferences"},
	Run: func(cmd *cobra.Command, args []string) {
		prefs, err := settings.NewLocal().Settings(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, prefs)
			return
		}

		cmd.Printf("%s %s\n", style.Faint("language"), style.Fg(color.Yellow)(prefs.Language))
		cmd.Printf("%s %d\n", style.Faint("quality"), prefs.Quality)
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
	prefsSetCmd.Flags().StringP("language", "l", "", "Preferred source language, e.g. dubs or subs")
	prefsSetCmd.Flags().IntP("quality", "q", 0, "Preferred quality (bitrate)")
	_ = prefsSetCmd.RegisterFlagCompletionFunc("language", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"dubs", "subs"}, cobra.ShellCompDirectiveNoFileComp
	})
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the playback preferences",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("language") && !cmd.Flags().Changed("quality") {
			handleErr(fmt.Errorf("either --language or --quality must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		gateway := settings.NewLocal()
		defer gateway.Close()

		prefs, err := gateway.Settings(cmd.Context())
		handleErr(err)

		if cmd.Flags().Changed("language") {
			prefs.Language = lo.Must(cmd.Flags().GetString("language"))
		}
		if cmd.Flags().Changed("quality") {
			prefs.Quality = lo.Must(cmd.Flags().GetInt("quality"))
		}

		handleErr(gateway.SetPreferences(cmd.Context(), prefs))
		fmt.Printf("%s language %s, quality %d\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Yellow)(prefs.Language), prefs.Quality)
	},
}
