package wonderful

import (
	"fmt"
	"strings"

	"github.com/anicat-cli/anicat/resolve"
	"github.com/anicat-cli/anicat/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const watchMarker = "watch/"

// Preferred resolutions in the upstream image lists.
const (
	posterTallIndex = 2
	posterWideIndex = 4
	thumbnailIndex  = 0
)

const unknown = "unk"

func showShortName(url string) (string, error) {
	i := strings.Index(url, watchMarker)
	if i < 0 {
		return "", &source.TranslationError{Field: "url", Err: fmt.Errorf("no %q in %q", watchMarker, url)}
	}
	return url[i+len(watchMarker):], nil
}

// indexOrGoodEnough picks images[ideal], or the last image when the list is shorter.
func indexOrGoodEnough(images []image, ideal int) mo.Option[string] {
	if len(images) == 0 {
		return mo.None[string]()
	}

	picked := images[min(ideal, len(images)-1)].Source
	if picked == "" {
		return mo.None[string]()
	}
	return mo.Some(picked)
}

func translateShows(envelope *seriesEnvelope, provider string) ([]*source.Show, error) {
	if envelope.JSON == nil {
		return nil, &source.TranslationError{Field: "json"}
	}

	shows := make([]*source.Show, 0, len(envelope.JSON.Series))
	for _, s := range envelope.JSON.Series {
		if s == nil {
			continue
		}

		shortName, err := showShortName(s.URL)
		if err != nil {
			return nil, err
		}

		shows = append(shows, &source.Show{
			ID:          shortName,
			ShortName:   shortName,
			Provider:    provider,
			Name:        s.Title,
			Description: s.Description,
			Picture:     indexOrGoodEnough(s.PosterTall, posterTallIndex),
			WallArt:     indexOrGoodEnough(s.PosterWide, posterWideIndex),
			Attributes: source.ShowAttributes{
				Dubbed: s.IsDubbed,
				Subbed: s.IsSubbed,
				Rating: string(s.Rating),
			},
		})
	}

	return shows, nil
}

// translateSeasons splits a single flat episode list into seasons of chunk
// episodes named after their range. Any other layout maps one media group
// to one season.
func translateSeasons(envelope *detailEnvelope, chunk int) ([]*source.Season, error) {
	switch {
	case envelope.JSON == nil:
		return nil, &source.TranslationError{Field: "json"}
	case envelope.JSON.Seasons == nil:
		return nil, &source.TranslationError{Field: "json.seasons"}
	case envelope.JSON.Seasons.WS == nil:
		return nil, &source.TranslationError{Field: "json.seasons.ws"}
	}

	media := lo.Compact(envelope.JSON.Seasons.WS.Media)
	if chunk < 1 {
		chunk = 1
	}

	if len(media) == 1 && media[0].Type == string(source.SeasonTypeEpisodes) {
		episodes := media[0].Episodes
		if len(episodes) <= chunk {
			return []*source.Season{{
				ID:         0,
				SeasonName: fmt.Sprintf("1 to %d", len(episodes)),
				Type:       source.SeasonTypeEpisodes,
				Episodes:   translateEpisodes(episodes),
			}}, nil
		}

		return lo.Map(lo.Chunk(episodes, chunk), func(slice []*apiEpisode, i int) *source.Season {
			start := i * chunk
			return &source.Season{
				ID:         i,
				SeasonName: fmt.Sprintf("%d to %d", start+1, start+len(slice)),
				Type:       source.SeasonTypeEpisodes,
				Episodes:   translateEpisodes(slice),
			}
		}), nil
	}

	return lo.Map(media, func(m *apiMedia, i int) *source.Season {
		return &source.Season{
			ID:         i,
			SeasonName: m.Title,
			Type:       source.SeasonType(m.Type),
			Episodes:   translateEpisodes(m.Episodes),
		}
	}), nil
}

func translateEpisodes(episodes []*apiEpisode) []*source.Episode {
	episodes = lo.Compact(episodes)
	return lo.Map(episodes, func(e *apiEpisode, i int) *source.Episode {
		sources, attributes := stubSources(e)
		return &source.Episode{
			ID:            i,
			Name:          e.Title,
			EpisodeNumber: string(e.EpisodeNumber),
			Description:   e.Description,
			Picture:       indexOrGoodEnough(e.Thumbnail, thumbnailIndex),
			Sources:       sources,
			Attributes:    attributes,
		}
	})
}

// stubSources lists the unresolved sources of an episode, one per retrieval
// URL. A retrieval URL set on the episode itself yields a single source of
// unknown name and language.
func stubSources(e *apiEpisode) ([]*source.Source, source.EpisodeAttributes) {
	var attributes source.EpisodeAttributes

	if len(e.RetrieveURL) > 0 {
		return []*source.Source{{
			ID:       0,
			Name:     unknown,
			Language: unknown,
			FetchURL: e.RetrieveURL[0],
		}}, attributes
	}

	var sources []*source.Source
	for _, s := range lo.Compact(e.Sources) {
		switch s.Language {
		case "subs":
			attributes.Subbed = true
		case "dubs":
			attributes.Dubbed = true
		}

		for _, fetchURL := range s.RetrieveURL {
			sources = append(sources, &source.Source{
				ID:       len(sources),
				Name:     s.Source,
				Language: s.Language,
				FetchURL: fetchURL,
			})
		}
	}

	return sources, attributes
}

// translateStream takes the last, highest quality, entry of the stream list.
// An entry without a src is never returned as a resolved stream.
func translateStream(envelope *streamEnvelope) (resolve.Stream, error) {
	urls := lo.Compact(envelope.URLs)
	if len(urls) == 0 {
		return resolve.Stream{}, &source.TranslationError{Field: "urls"}
	}

	best := urls[len(urls)-1]
	if best.Src == "" {
		return resolve.Stream{}, &source.TranslationError{Field: "urls.src"}
	}

	quality := best.Label
	if quality == "" {
		quality = unknown
	}
	return resolve.Stream{URL: best.Src, Quality: quality}, nil
}
