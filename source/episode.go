package source

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// EpisodeAttributes tells whether any source of the episode is dubbed or subbed.
type EpisodeAttributes struct {
	Dubbed bool `json:"dubbed"`
	Subbed bool `json:"subbed"`
}

// Episode is a playable unit. Watched and Progress are projections of the
// settings state and are recomputed on every read.
type Episode struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	EpisodeNumber string             `json:"episodeNumber"`
	Description   string             `json:"description"`
	Picture       mo.Option[string]  `json:"picture" jsonschema:"type=string"`
	Sources       []*Source          `json:"sources"`
	Watched       bool               `json:"watched"`
	Progress      mo.Option[float64] `json:"progress" jsonschema:"type=number"`
	Attributes    EpisodeAttributes  `json:"attributes"`
}

func (e *Episode) String() string {
	return e.Name
}

// Source returns the source with the given ordinal id.
func (e *Episode) Source(id int) (*Source, bool) {
	if id < 0 || id >= len(e.Sources) || e.Sources[id] == nil {
		return nil, false
	}
	return e.Sources[id], true
}

func (e *Episode) Clone() *Episode {
	if e == nil {
		return nil
	}
	c := *e
	c.Sources = lo.Map(e.Sources, func(s *Source, _ int) *Source {
		return s.Clone()
	})
	return &c
}
