package subsonic

import (
	"context"
	"strings"

	"sonicbridge/models"
)

// searchMinScore is the lowest fuzzy match score a name that does not
// contain the search term verbatim needs to be returned.
const searchMinScore = 0

const (
	defaultArtistCount = 20
	defaultAlbumCount  = 20
	defaultSongCount   = 10
)

type searchHits struct {
	artists, albums, songs []models.Item
}

// searchTerm strips the quoting some clients wrap around the query. "" and
// "*" both mean "everything".
func searchTerm(q string) string {
	q = strings.TrimSpace(strings.Trim(q, `"`))
	if q == "*" {
		return ""
	}
	return q
}

// search runs the artist, album and song searches. Any failing search fails
// the whole request.
func (p *Plugin) search(ctx context.Context, params RequestParams) (searchHits, Result) {
	term := searchTerm(params.Query)
	var hits searchHits
	sub := []struct {
		kind          models.ItemKind
		count, offset string
		def           int
		dst           *[]models.Item
	}{
		{models.KindArtist, params.ArtistCount, params.ArtistOffset, defaultArtistCount, &hits.artists},
		{models.KindAlbum, params.AlbumCount, params.AlbumOffset, defaultAlbumCount, &hits.albums},
		{models.KindSong, params.SongCount, params.SongOffset, defaultSongCount, &hits.songs},
	}

	for _, s := range sub {
		q := models.SearchQuery{
			Kind:     s.kind,
			Term:     term,
			Limit:    max(intParam(p.log, string(s.kind)+"Count", s.count, s.def), 0),
			Offset:   max(intParam(p.log, string(s.kind)+"Offset", s.offset, 0), 0),
			MinScore: searchMinScore,
			FolderID: params.MusicFolderID,
		}
		if q.Limit == 0 {
			continue
		}
		items, err := p.library.Search(ctx, q)
		if err != nil {
			return searchHits{}, p.libraryError(err, "search "+string(s.kind)+"s")
		}
		*s.dst = items
	}
	return hits, nil
}

func (p *Plugin) search2(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	hits, res := p.search(ctx, params)
	if res != nil {
		return res
	}
	return ok(&SearchResult2{
		Artists: newArtists(hits.artists),
		Albums:  newChildren(hits.albums),
		Songs:   newChildren(hits.songs),
	})
}

func (p *Plugin) search3(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	hits, res := p.search(ctx, params)
	if res != nil {
		return res
	}
	return ok(&SearchResult3{
		Artists: newArtistsID3(hits.artists),
		Albums:  newAlbumsID3(hits.albums),
		Songs:   newChildren(hits.songs),
	})
}
