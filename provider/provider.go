// Package provider defines the catalog provider contract and the registry of
// built-in providers.
package provider

import (
	"context"

	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// CatalogProvider is a remote catalog normalized into the source model.
// Calls addressing a show resolve it within session.Current.
type CatalogProvider interface {
	Key() string
	Categories() []source.Category

	// FetchShows returns the shows of a category. Asking again for the
	// current category loads its next page.
	FetchShows(ctx context.Context, session *source.Session, category string) ([]*source.Show, error)
	// SearchShows replaces the search category with the results of query.
	SearchShows(ctx context.Context, session *source.Session, query string) ([]*source.Show, error)
	FetchShowDescription(ctx context.Context, session *source.Session, showID string) (*source.Show, error)
	// FetchSeasons resolves the seasons of a show once and serves them from cache afterwards.
	FetchSeasons(ctx context.Context, session *source.Session, showID string) (*source.Show, error)
	// FetchSources resolves a playable source of an episode. bad names a
	// source that failed to play.
	FetchSources(ctx context.Context, session *source.Session, showID string, seasonID, episodeID int, bad mo.Option[int]) (*resolve.Result, error)

	// Sync loads the settings state from the gateway.
	Sync(ctx context.Context) error
	// Listen folds events into the settings state until events is closed or ctx is done.
	Listen(ctx context.Context, events <-chan settings.Event)
}

// Provider describes a registered provider.
type Provider struct {
	ID   string
	Name string
	// Create builds the provider around a settings gateway.
	Create func(gateway settings.Gateway) (CatalogProvider, error)
}

func (p *Provider) String() string {
	return p.Name
}

var builtins []*Provider

// Register adds a built-in provider. It is meant to be called from init.
func Register(p *Provider) {
	builtins = append(builtins, p)
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return builtins
}

// Get finds a provider by name or id.
func Get(name string) (*Provider, bool) {
	return lo.Find(builtins, func(p *Provider) bool {
		return p.Name == name || p.ID == name
	})
}
