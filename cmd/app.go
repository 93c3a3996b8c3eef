package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/anicat-cli/anicat/key"
	"github.com/anicat-cli/anicat/provider"
	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app wires the configured provider to the local settings gateway for the
// lifetime of a single command.
type app struct {
	ctx      context.Context
	provider provider.CatalogProvider
	gateway  *settings.Local
	session  *source.Session

	stop func()
}

func newApp() (*app, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	name := viper.GetString(key.ProviderDefault)
	p, ok := provider.Get(name)
	if !ok {
		cancel()
		return nil, fmt.Errorf("unknown provider %q, see %q", name, "anicat providers")
	}

	gateway := settings.NewLocal()
	catalog, err := p.Create(gateway)
	if err != nil {
		cancel()
		return nil, err
	}

	if err := catalog.Sync(ctx); err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	events := gateway.Subscribe()
	go func() {
		defer close(done)
		catalog.Listen(ctx, events)
	}()

	return &app{
		ctx:      ctx,
		provider: catalog,
		gateway:  gateway,
		session:  source.NewSession(source.CategoryBookmarks),
		stop: func() {
			gateway.Close()
			<-done
			cancel()
		},
	}, nil
}

// mustApp is newApp for command bodies.
func mustApp() *app {
	a, err := newApp()
	handleErr(err)
	return a
}

func (a *app) Close() {
	a.stop()
}

// open positions the session on category, loading it when needed, then
// loads more additional pages.
func (a *app) open(category string, more int) ([]*source.Show, error) {
	shows, err := a.provider.FetchShows(a.ctx, a.session, category)
	for i := 0; err == nil && i < more; i++ {
		shows, err = a.provider.FetchShows(a.ctx, a.session, category)
	}
	return shows, err
}

func addMoreFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("more", "m", 0, "Load this many additional pages of the category")
}

func moreFlag(cmd *cobra.Command) int {
	more, err := cmd.Flags().GetInt("more")
	handleErr(err)
	return more
}

func intArg(args []string, i int, name string) int {
	n, err := strconv.Atoi(args[i])
	if err != nil {
		handleErr(fmt.Errorf("invalid %s %q: must be an integer", name, args[i]))
	}
	return n
}

func categoryCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{source.CategoryLatest, source.CategoryPopular, source.CategoryBookmarks}, cobra.ShellCompDirectiveNoFileComp
}
