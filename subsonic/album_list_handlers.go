package subsonic

import (
	"context"
	"strconv"

	"sonicbridge/models"
)

const (
	defaultAlbumListSize = 10
	maxAlbumListSize     = 500
)

// albumQuery translates the getAlbumList type and its parameters into a
// library query. valid is false when no query can be made; res is then either
// nil (unknown type, empty list) or the error response.
func (p *Plugin) albumQuery(params RequestParams) (q models.AlbumQuery, res Result, valid bool) {
	size := intParam(p.log, "size", params.Size, defaultAlbumListSize)
	if size <= 0 {
		size = defaultAlbumListSize
	}
	q = models.AlbumQuery{
		Limit:    min(size, maxAlbumListSize),
		Offset:   max(intParam(p.log, "offset", params.Offset, 0), 0),
		FolderID: params.MusicFolderID,
	}

	switch params.Type {
	case "random":
		q.Sort = models.SortRandom
	case "newest":
		q.Sort, q.Desc = models.SortPremiereDate, true
	case "highest":
		q.Sort, q.Desc = models.SortRating, true
	case "recent":
		q.Sort, q.Desc = models.SortCreated, true
	case "alphabeticalByName":
		q.Sort = models.SortName
	case "alphabeticalByArtist":
		q.Sort = models.SortAlbumArtist
	case "starred":
		q.Sort, q.FavoritesOnly = models.SortName, true
	case "byYear":
		from, errFrom := strconv.Atoi(params.FromYear)
		to, errTo := strconv.Atoi(params.ToYear)
		if errFrom != nil || errTo != nil {
			return q, missingParam("fromYear/toYear"), false
		}
		// The range stops before the larger year, so fromYear=2000&toYear=2005
		// covers 2000 through 2004.
		q.Sort, q.Desc = models.SortYear, from > to
		q.Years = &models.YearRange{From: min(from, to), Until: max(from, to)}
	case "byGenre":
		if params.Genre == "" {
			return q, missingParam("genre"), false
		}
		q.Sort, q.Genre = models.SortName, params.Genre
	default:
		p.log.Warn().Str("type", params.Type).Msg("Unsupported album list type")
		return q, nil, false
	}
	return q, nil, true
}

func (p *Plugin) listAlbums(ctx context.Context, params RequestParams) ([]models.Item, Result) {
	q, res, valid := p.albumQuery(params)
	if !valid {
		return nil, res
	}
	albums, err := p.library.QueryAlbums(ctx, q)
	if err != nil {
		return nil, p.libraryError(err, "album list")
	}
	return albums, nil
}

func (p *Plugin) getAlbumList(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	albums, res := p.listAlbums(ctx, params)
	if res != nil {
		return res
	}
	return ok(&AlbumList{Albums: newChildren(albums)})
}

func (p *Plugin) getAlbumList2(ctx context.Context, _ AuthenticatedUser, params RequestParams) Result {
	albums, res := p.listAlbums(ctx, params)
	if res != nil {
		return res
	}
	return ok(&AlbumList2{Albums: newAlbumsID3(albums)})
}
