package library

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sonicbridge/models"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a Store on a migrated in-memory database whose clock
// advances one minute per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))

	prev := bcryptCost
	bcryptCost = bcrypt.MinCost
	t.Cleanup(func() { bcryptCost = prev })

	s := New(db, zerolog.Nop())
	clock := epoch
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

// seed writes items to the catalog the way a scan does.
func seed(t *testing.T, s *Store, items ...models.Item) {
	t.Helper()
	pass := &scanPass{items: map[string]*models.Item{}}
	for i := range items {
		if items[i].Created.IsZero() {
			items[i].Created = epoch
		}
		pass.add(&items[i])
	}
	_, err := (&Scanner{store: s}).write(context.Background(), pass, s.now())
	require.NoError(t, err)
}

func intPtr(n int) *int { return &n }

func names(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

// catalog is a small library: one folder, two artists, three albums, four
// songs of which one has no album.
func catalog() []models.Item {
	return []models.Item{
		{ID: "f1", FolderID: "f1", Kind: models.KindFolder, Name: "Music", SortName: "Music"},
		{ID: "ar1", Kind: models.KindArtist, Name: "The Beatles", SortName: "Beatles"},
		{ID: "ar2", Kind: models.KindArtist, Name: "ABBA", SortName: "ABBA"},
		{ID: "al1", ParentID: "ar1", FolderID: "f1", Kind: models.KindAlbum, Name: "Abbey Road", SortName: "Abbey Road",
			AlbumArtist: "The Beatles", ArtistID: "ar1", Year: intPtr(1969), Genres: []string{"Rock", "Pop"}},
		{ID: "al2", ParentID: "ar1", FolderID: "f1", Kind: models.KindAlbum, Name: "Let It Be", SortName: "Let It Be",
			AlbumArtist: "The Beatles", ArtistID: "ar1", Year: intPtr(1970), Genres: []string{"Rock"}},
		{ID: "al3", ParentID: "ar2", FolderID: "f1", Kind: models.KindAlbum, Name: "Arrival", SortName: "Arrival",
			AlbumArtist: "ABBA", ArtistID: "ar2", Year: intPtr(1976), Genres: []string{"Rockabilly"}},
		{ID: "s1", ParentID: "al1", FolderID: "f1", Kind: models.KindSong, Name: "Come Together", SortName: "Come Together",
			Album: "Abbey Road", AlbumID: "al1", ArtistID: "ar1", Track: intPtr(1), Path: "/music/1.mp3"},
		{ID: "s2", ParentID: "al1", FolderID: "f1", Kind: models.KindSong, Name: "Something", SortName: "Something",
			Album: "Abbey Road", AlbumID: "al1", ArtistID: "ar1", Track: intPtr(2), Path: "/music/2.mp3"},
		{ID: "s3", ParentID: "al3", FolderID: "f1", Kind: models.KindSong, Name: "Dancing Queen", SortName: "Dancing Queen",
			Album: "Arrival", AlbumID: "al3", ArtistID: "ar2", Track: intPtr(2), Path: "/music/3.mp3"},
		{ID: "s4", ParentID: "f1", FolderID: "f1", Kind: models.KindSong, Name: "Loose Track", SortName: "Loose Track",
			ArtistID: "ar2", Path: "/music/4.mp3"},
	}
}
