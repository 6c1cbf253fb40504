package models

// AlbumSort selects the ordering of an album listing.
type AlbumSort string

const (
	SortRandom       AlbumSort = "random"
	SortPremiereDate AlbumSort = "premiere_date"
	SortRating       AlbumSort = "rating"
	SortCreated      AlbumSort = "created"
	SortName         AlbumSort = "sort_name"
	SortAlbumArtist  AlbumSort = "album_artist"
	SortYear         AlbumSort = "year"
)

// YearRange is a half-open production year interval: From <= year < Until.
type YearRange struct {
	From  int
	Until int
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year < r.Until
}

// AlbumQuery describes an album listing. Only one of FavoritesOnly, Years
// and Genre is set by the album list handlers, but the library applies all
// that are present.
type AlbumQuery struct {
	Sort          AlbumSort
	Desc          bool
	Limit         int
	Offset        int
	FavoritesOnly bool
	Years         *YearRange
	Genre         string
	// FolderID scopes the listing to one music folder; empty means all.
	FolderID string
}

// SearchQuery describes a name search over one kind of item.
type SearchQuery struct {
	Kind     ItemKind
	Term     string
	Limit    int
	Offset   int
	MinScore int
	FolderID string
}
