package source

// Source is a stream candidate of an episode. FetchURL is the opaque token
// exchanged with the provider for the real stream; URL and Quality are only
// set once SourcesFetched is true.
type Source struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Language       string `json:"language"`
	FetchURL       string `json:"fetchUrl"`
	URL            string `json:"url,omitempty"`
	Quality        string `json:"quality,omitempty"`
	SourcesFetched bool   `json:"sourcesFetched"`
	Stalled        bool   `json:"stalled"`
}

// String returns the quality when resolved, the name otherwise.
func (s *Source) String() string {
	if s.Quality != "" {
		return s.Name + " " + s.Quality
	}
	return s.Name
}

func (s *Source) Clone() *Source {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
