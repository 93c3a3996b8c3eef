package wonderful

import (
	"bytes"
	"encoding/json"
)

// image is one resolution of a poster or thumbnail; lists are ordered by size.
type image struct {
	Source string `json:"source"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type seriesEnvelope struct {
	JSON *struct {
		Series []*apiShow `json:"series"`
	} `json:"json"`
}

type apiShow struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PosterTall  []image    `json:"poster_tall"`
	PosterWide  []image    `json:"poster_wide"`
	IsDubbed    bool       `json:"is_dubbed"`
	IsSubbed    bool       `json:"is_subbed"`
	Rating      flexString `json:"rating"`
}

type detailEnvelope struct {
	JSON *struct {
		Seasons *struct {
			WS *struct {
				Media []*apiMedia `json:"media"`
			} `json:"ws"`
		} `json:"seasons"`
	} `json:"json"`
}

type apiMedia struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Episodes []*apiEpisode `json:"episodes"`
}

type apiEpisode struct {
	Title         string       `json:"title"`
	EpisodeNumber flexString   `json:"episode_number"`
	Description   string       `json:"description"`
	Thumbnail     []image      `json:"thumbnail"`
	Sources       []*apiSource `json:"sources"`
	RetrieveURL   retrieveURL  `json:"retrieve_url"`
}

type apiSource struct {
	Source      string      `json:"source"`
	Language    string      `json:"language"`
	RetrieveURL retrieveURL `json:"retrieve_url"`
}

type streamEnvelope struct {
	Status flexString `json:"status"`
	URLs   []*struct {
		Src   string `json:"src"`
		Label string `json:"label"`
	} `json:"urls"`
}

// retrieveURL is sent either as a single string or as a list.
type retrieveURL []string

func (r *retrieveURL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	default:
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*r = nil
		} else {
			*r = retrieveURL{single}
		}
		return nil
	}
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
