package subsonic

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sonicbridge/models"
)

// audioMIMETypes maps lowercase file extensions to stream content types.
var audioMIMETypes = map[string]string{
	"flac": "audio/flac",
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"opus": "audio/opus",
	"wav":  "audio/wav",
}

const defaultAudioMIMEType = "audio/basic"

func suffixOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// audioMIMEType returns the content type for an audio file path.
func audioMIMEType(path string) string {
	if t, ok := audioMIMETypes[strings.ToLower(suffixOf(path))]; ok {
		return t
	}
	return defaultAudioMIMEType
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func userRating(r *float64) *int {
	if r == nil {
		return nil
	}
	v := int(math.Round(*r))
	return &v
}

func newChild(item models.Item) Child {
	c := Child{
		ID:            item.ID,
		Parent:        item.ParentID,
		IsDir:         item.Kind.IsDir(),
		Title:         item.Name,
		Album:         item.Album,
		Artist:        item.AlbumArtist,
		Track:         item.Track,
		Year:          item.Year,
		Genre:         item.FirstGenre(),
		CoverArt:      item.ID,
		Size:          item.Size,
		Duration:      item.Duration,
		BitRate:       item.BitRate,
		Path:          item.Path,
		UserRating:    userRating(item.Rating),
		AverageRating: item.Rating,
		PlayCount:     item.PlayCount,
		DiscNumber:    item.Disc,
		Created:       timePtr(item.Created),
		Starred:       item.Favorite,
		AlbumID:       item.AlbumID,
		ArtistID:      item.ArtistID,
	}
	if item.Kind == models.KindSong {
		c.Suffix = suffixOf(item.Path)
		c.ContentType = audioMIMEType(item.Path)
		c.Type = "music"
	}
	return c
}

func newChildren(items []models.Item) []Child {
	out := make([]Child, 0, len(items))
	for _, it := range items {
		out = append(out, newChild(it))
	}
	return out
}

func newAlbumID3(item models.Item) AlbumID3 {
	a := AlbumID3{
		ID:        item.ID,
		Name:      item.Name,
		Artist:    item.AlbumArtist,
		ArtistID:  item.ArtistID,
		CoverArt:  item.ID,
		SongCount: item.ChildCount,
		PlayCount: item.PlayCount,
		Created:   timePtr(item.Created),
		Starred:   item.Favorite,
		Year:      item.Year,
		Genre:     item.FirstGenre(),
	}
	if item.Duration != nil {
		a.Duration = *item.Duration
	}
	return a
}

func newAlbumsID3(items []models.Item) []AlbumID3 {
	out := make([]AlbumID3, 0, len(items))
	for _, it := range items {
		out = append(out, newAlbumID3(it))
	}
	return out
}

func newArtistID3(item models.Item) ArtistID3 {
	return ArtistID3{
		ID:         item.ID,
		Name:       item.Name,
		CoverArt:   item.ID,
		AlbumCount: item.ChildCount,
		Starred:    item.Favorite,
	}
}

func newArtistsID3(items []models.Item) []ArtistID3 {
	out := make([]ArtistID3, 0, len(items))
	for _, it := range items {
		out = append(out, newArtistID3(it))
	}
	return out
}

func newArtist(item models.Item) Artist {
	return Artist{
		ID:            item.ID,
		Name:          item.Name,
		Starred:       item.Favorite,
		UserRating:    userRating(item.Rating),
		AverageRating: item.Rating,
	}
}

func newArtists(items []models.Item) []Artist {
	out := make([]Artist, 0, len(items))
	for _, it := range items {
		out = append(out, newArtist(it))
	}
	return out
}

// intParam parses a numeric request parameter. Empty values yield def
// silently; unparseable values yield def with a warning.
func intParam(log zerolog.Logger, name, value string, def int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("param", name).Str("value", value).Int("default", def).Msg("Invalid numeric parameter, using default")
		return def
	}
	return n
}
