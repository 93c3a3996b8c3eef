// Package wonderful implements the WonderfulSubs catalog provider.
package wonderful

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/anicat-cli/anicat/catalog"
	"github.com/anicat-cli/anicat/key"
	"github.com/anicat-cli/anicat/log"
	"github.com/anicat-cli/anicat/network"
	"github.com/anicat-cli/anicat/provider"
	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/settings"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	ID   = "wonderfulsubs"
	Name = "WonderfulSubs"
)

func init() {
	provider.Register(&provider.Provider{
		ID:   ID,
		Name: Name,
		Create: func(gateway settings.Gateway) (provider.CatalogProvider, error) {
			return New(network.New(network.OptionsFromConfig()), gateway, OptionsFromConfig()), nil
		},
	})
}

// Options controls paging and season synthesis.
type Options struct {
	BaseURL string
	// PageSize is the number of shows requested per page.
	PageSize int
	// MaxShows stops continuation once a category holds that many shows.
	MaxShows int
	// SeasonChunk is the number of episodes per synthetic season.
	SeasonChunk int
}

// OptionsFromConfig reads the provider.* configuration keys.
func OptionsFromConfig() Options {
	return Options{
		BaseURL:     viper.GetString(key.ProviderBaseURL),
		PageSize:    viper.GetInt(key.ProviderPageSize),
		MaxShows:    viper.GetInt(key.ProviderMaxShows),
		SeasonChunk: viper.GetInt(key.ProviderSeasonChunk),
	}
}

// Provider serves the WonderfulSubs catalog through a per-category cache.
type Provider struct {
	client  *network.Client
	gateway settings.Gateway
	opts    Options
	store   *catalog.Store
	engine  *resolve.Engine

	mu    sync.RWMutex
	state settings.State
}

var _ provider.CatalogProvider = (*Provider)(nil)

func New(client *network.Client, gateway settings.Gateway, opts Options) *Provider {
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}

	p := &Provider{
		client:  client,
		gateway: gateway,
		opts:    opts,
		store:   catalog.NewStore(),
		state:   settings.NewState(),
	}
	p.engine = resolve.NewEngine(resolve.FetcherFunc(p.fetchStream))
	return p
}

func (p *Provider) Key() string {
	return ID
}

func (p *Provider) Categories() []source.Category {
	return []source.Category{
		{Name: "Bookmarks", Type: source.CategoryBookmarks},
		{Name: "Popular", Type: source.CategoryPopular},
		{Name: "Latest", Type: source.CategoryLatest},
	}
}

// Sync replaces the settings state with the gateway's.
func (p *Provider) Sync(ctx context.Context) error {
	state, err := settings.Load(ctx, p.gateway)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	return nil
}

// Listen applies events to the settings state until events is closed or ctx is done.
func (p *Provider) Listen(ctx context.Context, events <-chan settings.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			log.Debugf("applying %s", ev.Name())
			p.mu.Lock()
			p.state = p.state.Apply(ev)
			p.mu.Unlock()
		}
	}
}

func (p *Provider) snapshot() settings.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Provider) FetchShows(ctx context.Context, session *source.Session, category string) ([]*source.Show, error) {
	switch category {
	case source.CategoryBookmarks:
		session.Current = category
		return p.fetchBookmarks(ctx)
	case source.CategorySearch:
		session.Current = category
		return p.listing(category), nil
	}

	if cursor, ok := p.store.Cursor(category); ok && category == session.Current {
		return p.fetchMoreShows(ctx, category, cursor)
	}

	if !p.store.Has(category) {
		shows, err := p.fetchPage(ctx, category, mo.None[int]())
		if err != nil {
			return nil, err
		}
		p.store.Replace(category, shows)
		p.store.SetCursor(category, p.opts.PageSize)
	}

	session.Current = category
	return p.listing(category), nil
}

func (p *Provider) fetchMoreShows(ctx context.Context, category string, cursor int) ([]*source.Show, error) {
	if p.store.Len(category) >= p.opts.MaxShows {
		log.Debugf("%s holds %d shows, not paging further", category, p.store.Len(category))
		return p.listing(category), nil
	}

	shows, err := p.fetchPage(ctx, category, mo.Some(cursor))
	if err != nil {
		return nil, err
	}
	p.store.Merge(category, shows)
	p.store.SetCursor(category, cursor+p.opts.PageSize)

	return p.listing(category), nil
}

func (p *Provider) fetchPage(ctx context.Context, category string, index mo.Option[int]) ([]*source.Show, error) {
	query := url.Values{"count": {fmt.Sprint(p.opts.PageSize)}}
	if i, ok := index.Get(); ok {
		query.Set("index", fmt.Sprint(i))
	}

	var envelope seriesEnvelope
	if err := p.client.GetJSON(ctx, p.endpoint(category, query), &envelope); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", category, err)
	}

	shows, err := translateShows(&envelope, ID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", category, err)
	}
	return shows, nil
}

func (p *Provider) fetchBookmarks(ctx context.Context) ([]*source.Show, error) {
	state := p.snapshot()
	bookmarks := state.Bookmarks
	if bookmarks == nil {
		var err error
		if bookmarks, err = p.gateway.Bookmarks(ctx); err != nil {
			return nil, fmt.Errorf("fetch bookmarks: %w", err)
		}

		p.mu.Lock()
		p.state = p.state.Apply(settings.BookmarkAdded{Bookmarks: bookmarks})
		p.mu.Unlock()
	}

	shows := lo.Values(bookmarks)
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].Name < shows[j].Name
	})
	p.store.Replace(source.CategoryBookmarks, shows)
	return p.listing(source.CategoryBookmarks), nil
}

func (p *Provider) SearchShows(ctx context.Context, session *source.Session, query string) ([]*source.Show, error) {
	var envelope seriesEnvelope
	if err := p.client.GetJSON(ctx, p.endpoint("search", url.Values{"q": {query}}), &envelope); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	shows, err := translateShows(&envelope, ID)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	p.store.Replace(source.CategorySearch, shows)
	session.Current = source.CategorySearch
	return p.listing(source.CategorySearch), nil
}

func (p *Provider) FetchShowDescription(_ context.Context, session *source.Session, showID string) (*source.Show, error) {
	show, err := p.store.Show(session.Current, showID)
	if err != nil {
		return nil, err
	}
	return catalog.ApplyProgress(show, p.snapshot()), nil
}

func (p *Provider) FetchSeasons(ctx context.Context, session *source.Session, showID string) (*source.Show, error) {
	category := session.Current
	show, err := p.store.Show(category, showID)
	if err != nil {
		return nil, err
	}

	if show.SeasonsFetched {
		return catalog.ApplyProgress(show, p.snapshot()), nil
	}

	var envelope detailEnvelope
	if err := p.client.GetJSON(ctx, p.endpoint("series", url.Values{"series": {show.LookupKey()}}), &envelope); err != nil {
		return nil, fmt.Errorf("fetch seasons of %s: %w", showID, err)
	}

	seasons, err := translateSeasons(&envelope, p.opts.SeasonChunk)
	if err != nil {
		return nil, fmt.Errorf("fetch seasons of %s: %w", showID, err)
	}

	show.Seasons = seasons
	show.SeasonsFetched = true
	p.store.PutShow(category, show)

	return catalog.ApplyProgress(show, p.snapshot()), nil
}

func (p *Provider) FetchSources(ctx context.Context, session *source.Session, showID string, seasonID, episodeID int, bad mo.Option[int]) (*resolve.Result, error) {
	category := session.Current

	var candidates []*source.Source
	_, err := p.store.UpdateEpisode(category, showID, seasonID, episodeID, func(e *source.Episode) {
		resolve.MarkStalled(e.Sources, bad)
		candidates = lo.Map(e.Sources, func(s *source.Source, _ int) *source.Source {
			return s.Clone()
		})
	})
	if err != nil {
		return nil, err
	}

	state := p.snapshot()
	resolved, err := p.engine.Resolve(ctx, candidates, resolve.Policy{
		Language: state.Preferences.Language,
		Bad:      bad,
	})
	if err != nil {
		return nil, fmt.Errorf("%s season %d episode %d: %w", showID, seasonID, episodeID, err)
	}

	show, err := p.store.UpdateEpisode(category, showID, seasonID, episodeID, func(e *source.Episode) {
		if _, i, ok := lo.FindIndexOf(e.Sources, func(s *source.Source) bool { return s.ID == resolved.ID }); ok {
			e.Sources[i] = resolved.Clone()
		}
	})
	if err != nil {
		return nil, err
	}

	return &resolve.Result{
		Show:   catalog.ApplyProgress(show, state),
		Source: resolved,
	}, nil
}

func (p *Provider) fetchStream(ctx context.Context, token string) (resolve.Stream, error) {
	var envelope streamEnvelope
	if err := p.client.GetJSON(ctx, p.endpoint("stream", url.Values{"code": {token}}), &envelope); err != nil {
		var statusErr *network.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return resolve.Stream{}, resolve.ErrNotFound
		}
		return resolve.Stream{}, err
	}

	if envelope.Status == "404" {
		return resolve.Stream{}, resolve.ErrNotFound
	}
	return translateStream(&envelope)
}

func (p *Provider) listing(category string) []*source.Show {
	return catalog.ApplyBookmarks(p.store.Shows(category), p.snapshot())
}

func (p *Provider) endpoint(path string, query url.Values) string {
	return p.opts.BaseURL + path + "?" + query.Encode()
}
