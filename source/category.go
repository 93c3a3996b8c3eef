package source

// Well-known category types.
const (
	CategoryLatest    = "latest"
	CategoryPopular   = "popular"
	CategoryBookmarks = "bookmarks"
	CategorySearch    = "search"
)

// Category is a named show listing.
type Category struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Session carries the category a consumer is currently browsing. Paging
// continuation and show lookups are resolved against it.
type Session struct {
	Current string
}

// NewSession starts a session positioned on the given category.
func NewSession(category string) *Session {
	return &Session{Current: category}
}
