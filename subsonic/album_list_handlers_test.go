package subsonic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sonicbridge/models"
)

func TestAlbumQuery_Types(t *testing.T) {
	p, _ := newTestPlugin(t)

	tests := []struct {
		typ  string
		want models.AlbumQuery
	}{
		{"random", models.AlbumQuery{Sort: models.SortRandom}},
		{"newest", models.AlbumQuery{Sort: models.SortPremiereDate, Desc: true}},
		{"highest", models.AlbumQuery{Sort: models.SortRating, Desc: true}},
		{"recent", models.AlbumQuery{Sort: models.SortCreated, Desc: true}},
		{"alphabeticalByName", models.AlbumQuery{Sort: models.SortName}},
		{"alphabeticalByArtist", models.AlbumQuery{Sort: models.SortAlbumArtist}},
		{"starred", models.AlbumQuery{Sort: models.SortName, FavoritesOnly: true}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			q, res, valid := p.albumQuery(validParams("type", tt.typ))
			require.True(t, valid)
			require.Nil(t, res)
			tt.want.Limit = defaultAlbumListSize
			assert.Equal(t, tt.want, q)
		})
	}
}

// byYear keeps the range the original listing used: the larger year is
// excluded. fromYear=2000&toYear=2005 therefore means 2000 through 2004.
// Changing this to an inclusive range needs a deliberate decision.
func TestAlbumQuery_ByYearHalfOpen(t *testing.T) {
	p, _ := newTestPlugin(t)

	q, res, valid := p.albumQuery(validParams("type", "byYear", "fromYear", "2000", "toYear", "2005"))
	require.True(t, valid)
	require.Nil(t, res)

	assert.Equal(t, models.SortYear, q.Sort)
	assert.False(t, q.Desc)
	require.NotNil(t, q.Years)
	assert.Equal(t, models.YearRange{From: 2000, Until: 2005}, *q.Years)
	assert.True(t, q.Years.Contains(2000))
	assert.True(t, q.Years.Contains(2004))
	assert.False(t, q.Years.Contains(2005))
}

func TestAlbumQuery_ByYearDescending(t *testing.T) {
	p, _ := newTestPlugin(t)

	q, _, valid := p.albumQuery(validParams("type", "byYear", "fromYear", "2010", "toYear", "1990"))
	require.True(t, valid)
	assert.True(t, q.Desc)
	assert.Equal(t, models.YearRange{From: 1990, Until: 2010}, *q.Years)
}

func TestAlbumQuery_ByYearNeedsYears(t *testing.T) {
	p, _ := newTestPlugin(t)

	for _, kv := range [][]string{
		{"type", "byYear"},
		{"type", "byYear", "fromYear", "2000"},
		{"type", "byYear", "fromYear", "x", "toYear", "2000"},
	} {
		_, res, valid := p.albumQuery(validParams(kv...))
		assert.False(t, valid)
		assert.Equal(t, "10", errorOf(t, res).Code)
	}
}

func TestAlbumQuery_ByGenre(t *testing.T) {
	p, _ := newTestPlugin(t)

	q, _, valid := p.albumQuery(validParams("type", "byGenre", "genre", "Rock"))
	require.True(t, valid)
	assert.Equal(t, "Rock", q.Genre)

	_, res, valid := p.albumQuery(validParams("type", "byGenre"))
	assert.False(t, valid)
	assert.Equal(t, "10", errorOf(t, res).Code)
}

func TestAlbumQuery_SizeAndOffset(t *testing.T) {
	p, _ := newTestPlugin(t)

	tests := []struct {
		size, offset string
		limit, skip  int
	}{
		{"", "", 10, 0},
		{"25", "5", 25, 5},
		{"abc", "-1", 10, 0},
		{"0", "x", 10, 0},
		{"100000", "3", maxAlbumListSize, 3},
	}
	for _, tt := range tests {
		q, _, valid := p.albumQuery(validParams("type", "random", "size", tt.size, "offset", tt.offset))
		require.True(t, valid)
		assert.Equal(t, tt.limit, q.Limit, "size=%q", tt.size)
		assert.Equal(t, tt.skip, q.Offset, "offset=%q", tt.offset)
	}
}

func TestGetAlbumList2_ByYear(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	want := models.AlbumQuery{
		Sort:     models.SortYear,
		Limit:    10,
		Years:    &models.YearRange{From: 2000, Until: 2005},
		FolderID: "f1",
	}
	lib.EXPECT().QueryAlbums(gomock.Any(), want).Return([]models.Item{
		{ID: "al1", Kind: models.KindAlbum, Name: "Think Tank", Year: intPtr(2003)},
	}, nil)

	res := p.Dispatch(context.Background(), "getAlbumList2",
		validParams("type", "byYear", "fromYear", "2000", "toYear", "2005", "musicFolderId", "f1"))

	out := envelopeOf(t, res).Data.(*AlbumList2)
	require.Len(t, out.Albums, 1)
	assert.Equal(t, "Think Tank", out.Albums[0].Name)
}

func TestGetAlbumList_UnknownTypeIsEmpty(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	res := p.Dispatch(context.Background(), "getAlbumList", validParams("type", "mostPlayed"))

	env := envelopeOf(t, res)
	assert.Equal(t, statusOK, env.Status)
	assert.Empty(t, env.Data.(*AlbumList).Albums)
}

func TestGetAlbumList_MissingType(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	res := p.Dispatch(context.Background(), "getAlbumList", validParams())
	assert.Equal(t, "Required parameter is missing: type", errorOf(t, res).Message)
}

func TestGetAlbumList_Children(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	lib.EXPECT().QueryAlbums(gomock.Any(), gomock.Any()).Return([]models.Item{
		{ID: "al1", Kind: models.KindAlbum, Name: "Parklife"},
	}, nil)

	res := p.Dispatch(context.Background(), "getAlbumList", validParams("type", "newest"))

	out := envelopeOf(t, res).Data.(*AlbumList)
	require.Len(t, out.Albums, 1)
	assert.True(t, out.Albums[0].IsDir)
	assert.Equal(t, "Parklife", out.Albums[0].Title)
}
