package source

import "github.com/samber/lo"

// SeasonType distinguishes regular episode groups from extras (movies, OVAs, specials).
type SeasonType string

// SeasonTypeEpisodes is the type of regular episode groups.
const SeasonTypeEpisodes SeasonType = "episodes"

// Season is an ordered group of episodes. Its ID is its index within the show.
type Season struct {
	ID         int        `json:"id"`
	SeasonName string     `json:"seasonName"`
	Type       SeasonType `json:"type"`
	Episodes   []*Episode `json:"episodes"`
}

// Episode returns the episode with the given ordinal id.
func (s *Season) Episode(id int) (*Episode, bool) {
	if id < 0 || id >= len(s.Episodes) || s.Episodes[id] == nil {
		return nil, false
	}
	return s.Episodes[id], true
}

func (s *Season) Clone() *Season {
	if s == nil {
		return nil
	}
	c := *s
	c.Episodes = lo.Map(s.Episodes, func(e *Episode, _ int) *Episode {
		return e.Clone()
	})
	return &c
}
