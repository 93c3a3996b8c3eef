package cmd

import (
	"os"

	"github.com/anicat-cli/anicat/color"
	"github.com/anicat-cli/anicat/key"
	"github.com/anicat-cli/anicat/provider"
	"github.com/anicat-cli/anicat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	providersCmd.SetOut(os.Stdout)
}

// providersCmd lists the registered catalog providers.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Display the registered catalog providers",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))
		if !raw {
			cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Builtin:"))
		}

		selected := viper.GetString(key.ProviderDefault)
		for _, p := range provider.Builtins() {
			if raw {
				cmd.Println(p.ID)
				continue
			}

			line := style.Fg(color.Purple)(p.ID) + " " + p.Name
			if p.ID == selected || p.Name == selected {
				line += " " + style.Faint("(default)")
			}
			cmd.Println(line)
		}
	},
}
