// Package cmd implements the command-line interface for anicat.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/constant"
	"github.com/anicat-cli/anicat/icon"
	"github.com/anicat-cli/anicat/key"
	"github.com/anicat-cli/anicat/log"
	"github.com/anicat-cli/anicat/provider"
	"github.com/anicat-cli/anicat/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	_ "github.com/anicat-cli/anicat/provider/wonderful"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("provider", "p", "", "Catalog provider to use")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
			return p.ID
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ProviderDefault, rootCmd.PersistentFlags().Lookup("provider")))
}

// rootCmd defines the entry point for the anicat application.
var rootCmd = &cobra.Command{
	Use:   constant.Anicat,
	Short: "Browse show catalogs and resolve playable streams from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse show catalogs and resolve playable streams from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			handleErr(cmd.Help())
			return
		}

		browseCmd.Run(browseCmd, args)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
