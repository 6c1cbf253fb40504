package models

import "time"

// ItemKind identifies what a catalog Item represents.
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindArtist ItemKind = "artist"
	KindAlbum  ItemKind = "album"
	KindSong   ItemKind = "song"
)

// IsDir reports whether items of this kind contain other items.
func (k ItemKind) IsDir() bool {
	return k != KindSong
}

// Item is a single catalog entity: a music folder, an artist, an album or a
// song. Optional numeric attributes are pointers; nil means "unknown".
type Item struct {
	ID       string
	ParentID string
	// FolderID is the music folder the item was scanned from. Artists span
	// folders and leave it empty.
	FolderID string
	Kind     ItemKind
	Name     string
	SortName string

	Album       string
	AlbumID     string
	AlbumArtist string
	ArtistID    string
	Genres      []string

	Track     *int
	Disc      *int
	Year      *int
	Size      *int64
	Duration  *int // seconds
	BitRate   *int // kbit/s
	Rating    *float64
	PlayCount *int

	// Favorite is the time the item was starred, nil when it is not.
	Favorite *time.Time

	Path string
	// ImagePath points at a standalone image file, or at the audio file
	// itself when ImageEmbedded is set.
	ImagePath     string
	ImageEmbedded bool

	// ChildCount is the number of albums of an artist or songs of an album.
	ChildCount int

	Created      time.Time
	Modified     time.Time
	PremiereDate *time.Time
}

// FirstGenre returns the primary genre tag, or an empty string.
func (i Item) FirstGenre() string {
	if len(i.Genres) == 0 {
		return ""
	}
	return i.Genres[0]
}
