package subsonic

import (
	"context"
	"slices"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"sonicbridge/models"
)

// findItem resolves params.ID and checks its kind. On failure the returned
// Result is the response to send.
func (p *Plugin) findItem(ctx context.Context, id string, kinds ...models.ItemKind) (*models.Item, Result) {
	item, err := p.library.FindByID(ctx, id)
	if err != nil {
		p.log.Error().Err(err).Str("id", id).Msg("Failed to look up item")
		return nil, fail(CodeGeneric, "")
	}
	if item == nil || (len(kinds) > 0 && !slices.Contains(kinds, item.Kind)) {
		return nil, fail(CodeDataNotFound, "")
	}
	return item, nil
}

func (p *Plugin) libraryError(err error, what string) Result {
	p.log.Error().Err(err).Msg("Failed to query " + what)
	return fail(CodeGeneric, "")
}

func (p *Plugin) getMusicFolders(ctx context.Context, _ AuthenticatedUser, _ RequestParams) Result {
	folders, err := p.library.QueryFolders(ctx)
	if err != nil {
		return p.libraryError(err, "music folders")
	}
	out := &MusicFolders{Folders: make([]MusicFolder, 0, len(folders))}
	for _, f := range folders {
		out.Folders = append(out.Folders, MusicFolder{ID: f.ID, Name: f.Name})
	}
	return ok(out)
}

// indexKey returns the index bucket of a sort name: its first letter
// upper-cased, or "#" when it does not start with a letter.
func indexKey(sortName string) string {
	r, _ := utf8.DecodeRuneInString(sortName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "#"
	}
	return string(unicode.ToUpper(r))
}

type artistBucket struct {
	name    string
	artists []models.Item
}

// bucketArtists groups artists by indexKey. Buckets appear in the order
// their first artist does.
func bucketArtists(artists []models.Item) []artistBucket {
	var buckets []artistBucket
	pos := make(map[string]int)
	for _, a := range artists {
		key := indexKey(a.SortName)
		i, seen := pos[key]
		if !seen {
			i = len(buckets)
			pos[key] = i
			buckets = append(buckets, artistBucket{name: key})
		}
		buckets[i].artists = append(buckets[i].artists, a)
	}
	return buckets
}

// lastModified is the newest Modified time of items in epoch milliseconds,
// or 0 when none is set.
func lastModified(items []models.Item) int64 {
	var latest time.Time
	for _, it := range items {
		if it.Modified.After(latest) {
			latest = it.Modified
		}
	}
	if latest.IsZero() {
		return 0
	}
	return latest.UnixMilli()
}

func (p *Plugin) getIndexes(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	artists, err := p.library.QueryArtists(ctx, params.MusicFolderID)
	if err != nil {
		return p.libraryError(err, "artists")
	}
	modified := lastModified(artists)

	if params.IfModifiedSince != "" {
		since, err := strconv.ParseInt(params.IfModifiedSince, 10, 64)
		if err != nil {
			p.log.Warn().Str("param", "ifModifiedSince").Str("value", params.IfModifiedSince).Msg("Invalid numeric parameter, ignoring")
		} else if modified <= since {
			return ok(nil)
		}
	}

	songs, err := p.folderSongs(ctx, params.MusicFolderID)
	if err != nil {
		return p.libraryError(err, "folder songs")
	}

	out := &Indexes{
		LastModified:    modified,
		IgnoredArticles: p.ignoredArticles,
		Children:        newChildren(songs),
	}
	for _, b := range bucketArtists(artists) {
		out.Indexes = append(out.Indexes, Index{Name: b.name, Artists: newArtists(b.artists)})
	}
	return ok(out)
}

// folderSongs returns the songs that sit directly under a music folder, or
// under any music folder when folderID is empty.
func (p *Plugin) folderSongs(ctx context.Context, folderID string) ([]models.Item, error) {
	folderIDs := []string{folderID}
	if folderID == "" {
		folders, err := p.library.QueryFolders(ctx)
		if err != nil {
			return nil, err
		}
		folderIDs = folderIDs[:0]
		for _, f := range folders {
			folderIDs = append(folderIDs, f.ID)
		}
	}

	var songs []models.Item
	for _, id := range folderIDs {
		children, err := p.library.QueryChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if c.Kind == models.KindSong {
				songs = append(songs, c)
			}
		}
	}
	return songs, nil
}

func (p *Plugin) getArtists(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	artists, err := p.library.QueryArtists(ctx, params.MusicFolderID)
	if err != nil {
		return p.libraryError(err, "artists")
	}
	out := &ArtistsID3{IgnoredArticles: p.ignoredArticles}
	for _, b := range bucketArtists(artists) {
		out.Indexes = append(out.Indexes, IndexID3{Name: b.name, Artists: newArtistsID3(b.artists)})
	}
	return ok(out)
}

func (p *Plugin) getArtist(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	artist, res := p.findItem(ctx, params.ID, models.KindArtist)
	if res != nil {
		return res
	}
	albums, err := p.library.QueryAlbumsByArtist(ctx, artist.ID)
	if err != nil {
		return p.libraryError(err, "artist albums")
	}
	out := newArtistID3(*artist)
	out.AlbumCount = len(albums)
	out.Albums = newAlbumsID3(albums)
	return ok(&out)
}

func (p *Plugin) getAlbum(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	album, res := p.findItem(ctx, params.ID, models.KindAlbum)
	if res != nil {
		return res
	}
	songs, err := p.library.QueryChildren(ctx, album.ID)
	if err != nil {
		return p.libraryError(err, "album songs")
	}
	out := newAlbumID3(*album)
	out.SongCount = len(songs)
	if album.Duration == nil {
		for _, s := range songs {
			if s.Duration != nil {
				out.Duration += *s.Duration
			}
		}
	}
	out.Songs = newChildren(songs)
	return ok(&out)
}

func (p *Plugin) getSong(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	song, res := p.findItem(ctx, params.ID, models.KindSong)
	if res != nil {
		return res
	}
	out := newChild(*song)
	return ok(&out)
}

func (p *Plugin) getMusicDirectory(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	dir, res := p.findItem(ctx, params.ID, models.KindFolder, models.KindArtist, models.KindAlbum)
	if res != nil {
		return res
	}
	children, err := p.library.QueryChildren(ctx, dir.ID)
	if err != nil {
		return p.libraryError(err, "directory children")
	}
	return ok(&Directory{
		ID:            dir.ID,
		Parent:        dir.ParentID,
		Name:          dir.Name,
		Starred:       dir.Favorite,
		UserRating:    userRating(dir.Rating),
		AverageRating: dir.Rating,
		PlayCount:     dir.PlayCount,
		Children:      newChildren(children),
	})
}

// getGenres counts albums per genre first and songs second, so genres only
// found on songs are listed after every album genre.
func (p *Plugin) getGenres(ctx context.Context, _ AuthenticatedUser, _ RequestParams) Result {
	albums, err := p.library.QueryAlbums(ctx, models.AlbumQuery{Sort: models.SortName})
	if err != nil {
		return p.libraryError(err, "albums")
	}
	songs, err := p.library.QueryAllSongs(ctx, "")
	if err != nil {
		return p.libraryError(err, "songs")
	}

	out := &Genres{}
	pos := make(map[string]int)
	genre := func(name string) *Genre {
		i, seen := pos[name]
		if !seen {
			i = len(out.Genres)
			pos[name] = i
			out.Genres = append(out.Genres, Genre{Value: name})
		}
		return &out.Genres[i]
	}
	for _, a := range albums {
		for _, g := range a.Genres {
			genre(g).AlbumCount++
		}
	}
	for _, s := range songs {
		for _, g := range s.Genres {
			genre(g).SongCount++
		}
	}
	return ok(out)
}

// getArtistInfo and getArtistInfo2 only confirm the artist exists. No
// external metadata source is consulted, so the payload is always empty.
func (p *Plugin) getArtistInfo(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	if _, res := p.findItem(ctx, params.ID); res != nil {
		return res
	}
	return ok(&ArtistInfo{})
}

func (p *Plugin) getArtistInfo2(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	if _, res := p.findItem(ctx, params.ID); res != nil {
		return res
	}
	return ok(&ArtistInfo2{})
}
