// Package library is the media catalog behind the Subsonic bridge: a sqlite
// database of music folders, artists, albums and songs filled by Scanner,
// plus the host user accounts and their linked Subsonic credentials.
package library

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dhowden/tag"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"sonicbridge/models"
)

// ErrNotFound is returned when a user or item that must exist does not.
var ErrNotFound = errors.New("not found")

// Store reads and writes the catalog. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// New returns a Store on a migrated database.
func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "library").Logger(),
		now: time.Now,
	}
}

// genreSep separates genres in the genres column. The column also starts
// and ends with it so a single genre can be matched with LIKE.
const genreSep = ";"

func joinGenres(genres []string) string {
	if len(genres) == 0 {
		return ""
	}
	return genreSep + strings.Join(genres, genreSep) + genreSep
}

func splitGenres(s string) []string {
	s = strings.Trim(s, genreSep)
	if s == "" {
		return nil
	}
	return strings.Split(s, genreSep)
}

var itemColumns = []string{
	"i.id", "i.parent_id", "i.folder_id", "i.kind", "i.name", "i.sort_name",
	"i.album", "i.album_id", "i.album_artist", "i.artist_id", "i.genres",
	"i.track", "i.disc", "i.year", "i.size", "i.duration", "i.bitrate",
	"i.path", "i.image_path", "i.image_embedded",
	"i.created", "i.modified", "i.premiere_date",
	"a.rating", "a.play_count", "a.favorite",
	"(SELECT COUNT(*) FROM items c WHERE c.parent_id = i.id) AS child_count",
}

func selectItems() sq.SelectBuilder {
	return sq.Select(itemColumns...).
		From("items i").
		LeftJoin("annotations a ON a.item_id = i.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var (
		it                                   models.Item
		kind, genres                         string
		track, disc, year, duration, bitrate sql.NullInt64
		size                                 sql.NullInt64
		rating                               sql.NullFloat64
		playCount                            sql.NullInt64
		premiere, favorite                   sql.NullTime
	)
	err := row.Scan(
		&it.ID, &it.ParentID, &it.FolderID, &kind, &it.Name, &it.SortName,
		&it.Album, &it.AlbumID, &it.AlbumArtist, &it.ArtistID, &genres,
		&track, &disc, &year, &size, &duration, &bitrate,
		&it.Path, &it.ImagePath, &it.ImageEmbedded,
		&it.Created, &it.Modified, &premiere,
		&rating, &playCount, &favorite,
		&it.ChildCount,
	)
	if err != nil {
		return models.Item{}, err
	}
	it.Kind = models.ItemKind(kind)
	it.Genres = splitGenres(genres)
	it.Track = intOrNil(track)
	it.Disc = intOrNil(disc)
	it.Year = intOrNil(year)
	it.Duration = intOrNil(duration)
	it.BitRate = intOrNil(bitrate)
	it.PlayCount = intOrNil(playCount)
	if size.Valid {
		it.Size = &size.Int64
	}
	if rating.Valid {
		it.Rating = &rating.Float64
	}
	if premiere.Valid {
		it.PremiereDate = &premiere.Time
	}
	if favorite.Valid {
		it.Favorite = &favorite.Time
	}
	return it, nil
}

func intOrNil(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func (s *Store) queryItems(ctx context.Context, b sq.SelectBuilder) ([]models.Item, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// FindByID returns the item with the given id, or nil.
func (s *Store) FindByID(ctx context.Context, id string) (*models.Item, error) {
	items, err := s.queryItems(ctx, selectItems().Where(sq.Eq{"i.id": id}))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// QueryFolders lists the music folders by name.
func (s *Store) QueryFolders(ctx context.Context) ([]models.Item, error) {
	return s.queryItems(ctx, selectItems().
		Where(sq.Eq{"i.kind": models.KindFolder}).
		OrderBy("i.name COLLATE NOCASE"))
}

// artistsInFolder restricts an artist query to artists with songs in the
// folder. An empty folderID leaves the query unscoped.
func artistsInFolder(b sq.SelectBuilder, folderID string) sq.SelectBuilder {
	if folderID == "" {
		return b
	}
	return b.Where(sq.Expr(
		"EXISTS (SELECT 1 FROM items s WHERE s.artist_id = i.id AND s.kind = ? AND s.folder_id = ?)",
		models.KindSong, folderID))
}

func inFolder(b sq.SelectBuilder, folderID string) sq.SelectBuilder {
	if folderID == "" {
		return b
	}
	return b.Where(sq.Eq{"i.folder_id": folderID})
}

// QueryArtists lists artists by sort name.
func (s *Store) QueryArtists(ctx context.Context, folderID string) ([]models.Item, error) {
	b := selectItems().
		Where(sq.Eq{"i.kind": models.KindArtist}).
		OrderBy("i.sort_name COLLATE NOCASE", "i.name COLLATE NOCASE")
	return s.queryItems(ctx, artistsInFolder(b, folderID))
}

// QueryAllSongs lists songs in album order.
func (s *Store) QueryAllSongs(ctx context.Context, folderID string) ([]models.Item, error) {
	b := selectItems().
		Where(sq.Eq{"i.kind": models.KindSong}).
		OrderBy("i.album_artist COLLATE NOCASE", "i.album COLLATE NOCASE", "i.disc", "i.track", "i.sort_name")
	return s.queryItems(ctx, inFolder(b, folderID))
}

// QueryAlbumsByArtist lists an artist's albums oldest first.
func (s *Store) QueryAlbumsByArtist(ctx context.Context, artistID string) ([]models.Item, error) {
	return s.queryItems(ctx, selectItems().
		Where(sq.Eq{"i.kind": models.KindAlbum, "i.parent_id": artistID}).
		OrderBy("i.year", "i.sort_name COLLATE NOCASE"))
}

// QueryChildren lists the direct children of a folder, artist or album. A
// music folder holds the artists with songs in it followed by the songs
// that have no album.
func (s *Store) QueryChildren(ctx context.Context, parentID string) ([]models.Item, error) {
	parent, err := s.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return []models.Item{}, nil
	}

	var children []models.Item
	if parent.Kind == models.KindFolder {
		children, err = s.QueryArtists(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
	}
	direct, err := s.queryItems(ctx, selectItems().
		Where(sq.Eq{"i.parent_id": parentID}).
		OrderBy("i.disc", "i.track", "i.sort_name COLLATE NOCASE"))
	if err != nil {
		return nil, err
	}
	return append(children, direct...), nil
}

var albumOrder = map[models.AlbumSort]string{
	models.SortRandom:       "RANDOM()",
	models.SortPremiereDate: "i.premiere_date",
	models.SortRating:       "a.rating",
	models.SortCreated:      "i.created",
	models.SortName:         "i.sort_name COLLATE NOCASE",
	models.SortAlbumArtist:  "i.album_artist COLLATE NOCASE",
	models.SortYear:         "i.year",
}

// QueryAlbums lists albums matching q. A zero Limit returns every match.
func (s *Store) QueryAlbums(ctx context.Context, q models.AlbumQuery) ([]models.Item, error) {
	b := inFolder(selectItems().Where(sq.Eq{"i.kind": models.KindAlbum}), q.FolderID)

	if q.FavoritesOnly {
		b = b.Where(sq.NotEq{"a.favorite": nil})
	}
	if q.Years != nil {
		b = b.Where(sq.GtOrEq{"i.year": q.Years.From}).Where(sq.Lt{"i.year": q.Years.Until})
	}
	if q.Genre != "" {
		// instr, not LIKE: % and _ in a genre name are literal.
		b = b.Where("instr(lower(i.genres), lower(?)) > 0", genreSep+q.Genre+genreSep)
	}

	order, ok := albumOrder[q.Sort]
	if !ok {
		order = albumOrder[models.SortName]
	}
	if q.Desc && q.Sort != models.SortRandom {
		order += " DESC"
	}
	b = b.OrderBy(order)
	if q.Sort != models.SortName && q.Sort != models.SortRandom {
		b = b.OrderBy("i.sort_name COLLATE NOCASE")
	}

	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		if q.Limit <= 0 {
			b = b.Limit(uint64(1<<63 - 1))
		}
		b = b.Offset(uint64(q.Offset))
	}
	return s.queryItems(ctx, b)
}

// OpenImage opens the cover image of item. Embedded pictures are read from
// the audio file's tags.
func (s *Store) OpenImage(_ context.Context, item models.Item) (io.ReadCloser, string, error) {
	if item.ImagePath == "" {
		return nil, "", ErrNotFound
	}
	if item.ImageEmbedded {
		return embeddedPicture(item.ImagePath)
	}
	f, err := os.Open(item.ImagePath)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(item.ImagePath)))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return f, contentType, nil
}

func embeddedPicture(path string) (io.ReadCloser, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", fmt.Errorf("read tags: %w", err)
	}
	pic := meta.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, "", ErrNotFound
	}
	contentType := pic.MIMEType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return io.NopCloser(bytes.NewReader(pic.Data)), contentType, nil
}

// OpenMedia opens the audio file of a song.
func (s *Store) OpenMedia(_ context.Context, item models.Item) (models.MediaFile, error) {
	if item.Kind != models.KindSong || item.Path == "" {
		return nil, ErrNotFound
	}
	f, err := os.Open(item.Path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	return f, nil
}
