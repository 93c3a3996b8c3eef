// Package source defines the normalized catalog model shared by providers,
// the catalog store and the source resolution engine.
package source

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ShowAttributes carries the audio/subtitle availability and rating of a show.
type ShowAttributes struct {
	Dubbed bool   `json:"dubbed"`
	Subbed bool   `json:"subbed"`
	Rating string `json:"rating,omitempty"`
}

// Show is a catalog entry. Its ID is the provider short name extracted from
// the canonical show URL, unique within a category.
type Show struct {
	ID          string            `json:"id"`
	ShortName   string            `json:"shortName"`
	Provider    string            `json:"provider"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Picture     mo.Option[string] `json:"picture" jsonschema:"type=string"`
	WallArt     mo.Option[string] `json:"wallArt" jsonschema:"type=string"`
	Attributes  ShowAttributes    `json:"attributes"`
	Bookmarked  bool              `json:"bookmarked"`

	// SeasonsFetched flips to true exactly once, when Seasons is fully translated.
	SeasonsFetched bool      `json:"seasonsFetched"`
	Seasons        []*Season `json:"seasons,omitempty"`
}

func (s *Show) String() string {
	return s.Name
}

// LookupKey returns the key used for detail requests: the short name, or the id when unset.
func (s *Show) LookupKey() string {
	if s.ShortName != "" {
		return s.ShortName
	}
	return s.ID
}

// Season returns the season with the given ordinal id.
func (s *Show) Season(id int) (*Season, bool) {
	if id < 0 || id >= len(s.Seasons) || s.Seasons[id] == nil {
		return nil, false
	}
	return s.Seasons[id], true
}

// Clone returns a deep copy of the show and every nested record.
func (s *Show) Clone() *Show {
	if s == nil {
		return nil
	}
	c := *s
	if s.Seasons != nil {
		c.Seasons = lo.Map(s.Seasons, func(season *Season, _ int) *Season {
			return season.Clone()
		})
	}
	return &c
}
