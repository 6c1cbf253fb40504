package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sonicbridge/models"
)

// ErrScanInProgress is returned by Scan while another scan is running.
var ErrScanInProgress = errors.New("scan already in progress")

// Folder is a configured music folder.
type Folder struct {
	Name string
	Path string
}

// ScanStats summarizes a finished scan.
type ScanStats struct {
	Folders  int
	Artists  int
	Albums   int
	Songs    int
	Skipped  int
	Removed  int64
	Duration time.Duration
}

var supportedExts = map[string]bool{
	".mp3": true, ".flac": true, ".m4a": true, ".ogg": true, ".opus": true, ".wav": true,
}

var (
	coverImages  = []string{"cover.jpg", "cover.png", "folder.jpg", "folder.png", "front.jpg"}
	artistImages = []string{"artist.jpg", "artist.png"}
)

const unknownArtist = "Unknown Artist"

// Scanner fills the catalog from music folders on disk. Only one scan runs
// at a time.
type Scanner struct {
	store    *Store
	log      zerolog.Logger
	articles []string
	mu       sync.Mutex
}

// NewScanner returns a Scanner writing to store. ignoredArticles is a space
// separated list of leading words skipped when sorting names.
func NewScanner(store *Store, log zerolog.Logger, ignoredArticles string) *Scanner {
	return &Scanner{
		store:    store,
		log:      log.With().Str("component", "scanner").Logger(),
		articles: strings.Fields(ignoredArticles),
	}
}

// scanPass collects the items of one scan before they are written.
type scanPass struct {
	items   map[string]*models.Item
	order   []string
	skipped int
}

func (p *scanPass) add(it *models.Item) *models.Item {
	if existing, ok := p.items[it.ID]; ok {
		return existing
	}
	p.items[it.ID] = it
	p.order = append(p.order, it.ID)
	return it
}

func (p *scanPass) count(kind models.ItemKind) int {
	n := 0
	for _, it := range p.items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Scan walks folders and replaces the catalog with what it finds. Items no
// longer on disk are removed; ratings and favourites of surviving items
// are kept.
func (sc *Scanner) Scan(ctx context.Context, folders []Folder) (ScanStats, error) {
	if !sc.mu.TryLock() {
		return ScanStats{}, ErrScanInProgress
	}
	defer sc.mu.Unlock()

	start := sc.store.now().UTC()
	sc.log.Info().Int("folders", len(folders)).Msg("Scan started")

	pass := &scanPass{items: map[string]*models.Item{}}
	for _, f := range folders {
		if err := sc.walkFolder(ctx, pass, f, start); err != nil {
			return ScanStats{}, err
		}
	}

	removed, err := sc.write(ctx, pass, start)
	if err != nil {
		return ScanStats{}, err
	}

	stats := ScanStats{
		Folders:  pass.count(models.KindFolder),
		Artists:  pass.count(models.KindArtist),
		Albums:   pass.count(models.KindAlbum),
		Songs:    pass.count(models.KindSong),
		Skipped:  pass.skipped,
		Removed:  removed,
		Duration: sc.store.now().UTC().Sub(start),
	}
	sc.log.Info().
		Int("artists", stats.Artists).
		Int("albums", stats.Albums).
		Int("songs", stats.Songs).
		Int("skipped", stats.Skipped).
		Int64("removed", stats.Removed).
		Dur("took", stats.Duration).
		Msg("Scan finished")
	return stats, nil
}

func entityID(kind models.ItemKind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(kind)+":"+key)).String()
}

func (sc *Scanner) walkFolder(ctx context.Context, pass *scanPass, f Folder, now time.Time) error {
	root := filepath.Clean(f.Path)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("music folder %s: %w", f.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("music folder %s: not a directory", f.Path)
	}

	name := f.Name
	if name == "" {
		name = filepath.Base(root)
	}
	folder := pass.add(&models.Item{
		ID:       entityID(models.KindFolder, root),
		Kind:     models.KindFolder,
		Name:     name,
		SortName: name,
		Path:     root,
		Created:  now,
		Modified: info.ModTime().UTC(),
	})
	folder.FolderID = folder.ID

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			sc.log.Warn().Err(err).Str("path", path).Msg("Error accessing path")
			return nil
		}
		if d.IsDir() || !supportedExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if err := sc.addSong(pass, folder, path, now); err != nil {
			sc.log.Warn().Err(err).Str("path", path).Msg("Skipping file")
			pass.skipped++
		}
		return nil
	})
}

// songTags is what a scan needs from an audio file's metadata.
type songTags struct {
	title, artist, album, albumArtist string
	genres                            []string
	track, disc, year                 int
	embeddedPicture                   bool
}

func readTags(path string) (songTags, error) {
	file, err := os.Open(path)
	if err != nil {
		return songTags{}, err
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return songTags{}, err
	}
	t := songTags{
		title:       strings.TrimSpace(meta.Title()),
		artist:      strings.TrimSpace(meta.Artist()),
		album:       strings.TrimSpace(meta.Album()),
		albumArtist: strings.TrimSpace(meta.AlbumArtist()),
		genres:      splitGenreTag(meta.Genre()),
		year:        meta.Year(),
	}
	t.track, _ = meta.Track()
	t.disc, _ = meta.Disc()
	if pic := meta.Picture(); pic != nil && len(pic.Data) > 0 {
		t.embeddedPicture = true
	}
	return t, nil
}

func splitGenreTag(s string) []string {
	var genres []string
	for _, g := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' || r == '/' }) {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func (sc *Scanner) addSong(pass *scanPass, folder *models.Item, path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	t, err := readTags(path)
	if err != nil {
		sc.log.Debug().Err(err).Str("path", path).Msg("Unreadable tags, using file name")
		t = songTags{}
	}
	if t.title == "" {
		t.title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if t.artist == "" {
		t.artist = unknownArtist
	}
	if t.albumArtist == "" {
		t.albumArtist = t.artist
	}

	dir := filepath.Dir(path)
	size := info.Size()
	modified := info.ModTime().UTC()
	imagePath, embedded := findLocalImage(dir, coverImages), false
	if imagePath == "" && t.embeddedPicture {
		imagePath, embedded = path, true
	}

	artist := pass.add(&models.Item{
		ID:        entityID(models.KindArtist, strings.ToLower(t.albumArtist)),
		Kind:      models.KindArtist,
		Name:      t.albumArtist,
		SortName:  sc.sortName(t.albumArtist),
		ImagePath: findLocalImage(filepath.Dir(dir), artistImages),
		Created:   now,
	})
	if modified.After(artist.Modified) {
		artist.Modified = modified
	}

	song := &models.Item{
		ID:            entityID(models.KindSong, path),
		ParentID:      folder.ID,
		FolderID:      folder.ID,
		Kind:          models.KindSong,
		Name:          t.title,
		SortName:      sc.sortName(t.title),
		Album:         t.album,
		AlbumArtist:   t.albumArtist,
		ArtistID:      artist.ID,
		Genres:        t.genres,
		Track:         positive(t.track),
		Disc:          positive(t.disc),
		Year:          positive(t.year),
		Size:          &size,
		Path:          path,
		ImagePath:     imagePath,
		ImageEmbedded: embedded,
		Created:       now,
		Modified:      modified,
	}

	if t.album != "" {
		album := pass.add(&models.Item{
			ID:            entityID(models.KindAlbum, strings.ToLower(t.albumArtist)+"\x00"+strings.ToLower(t.album)),
			ParentID:      artist.ID,
			FolderID:      folder.ID,
			Kind:          models.KindAlbum,
			Name:          t.album,
			SortName:      sc.sortName(t.album),
			Album:         t.album,
			AlbumArtist:   t.albumArtist,
			ArtistID:      artist.ID,
			ImagePath:     imagePath,
			ImageEmbedded: embedded,
			Created:       now,
		})
		mergeAlbum(album, song)
		song.ParentID = album.ID
		song.AlbumID = album.ID
	}

	pass.add(song)
	return nil
}

// mergeAlbum folds a song's tags into its album.
func mergeAlbum(album, song *models.Item) {
	if album.Year == nil && song.Year != nil {
		album.Year = song.Year
		premiere := time.Date(*song.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		album.PremiereDate = &premiere
	}
	for _, g := range song.Genres {
		if !containsFold(album.Genres, g) {
			album.Genres = append(album.Genres, g)
		}
	}
	if album.ImagePath == "" && song.ImagePath != "" {
		album.ImagePath, album.ImageEmbedded = song.ImagePath, song.ImageEmbedded
	}
	if song.Modified.After(album.Modified) {
		album.Modified = song.Modified
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func findLocalImage(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// sortName drops a leading ignored article: "The Beatles" sorts as
// "Beatles".
func (sc *Scanner) sortName(name string) string {
	for _, article := range sc.articles {
		if len(name) > len(article)+1 && strings.EqualFold(name[:len(article)], article) && name[len(article)] == ' ' {
			return strings.TrimSpace(name[len(article)+1:])
		}
	}
	return name
}

const upsertItem = "ON CONFLICT(id) DO UPDATE SET " +
	"parent_id = excluded.parent_id, folder_id = excluded.folder_id, kind = excluded.kind, " +
	"name = excluded.name, sort_name = excluded.sort_name, album = excluded.album, " +
	"album_id = excluded.album_id, album_artist = excluded.album_artist, artist_id = excluded.artist_id, " +
	"genres = excluded.genres, track = excluded.track, disc = excluded.disc, year = excluded.year, " +
	"size = excluded.size, duration = excluded.duration, bitrate = excluded.bitrate, " +
	"path = excluded.path, image_path = excluded.image_path, image_embedded = excluded.image_embedded, " +
	"modified = excluded.modified, premiere_date = excluded.premiere_date, scanned_at = excluded.scanned_at"

func (sc *Scanner) write(ctx context.Context, pass *scanPass, scannedAt time.Time) (int64, error) {
	tx, err := sc.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin scan transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range pass.order {
		it := pass.items[id]
		if it.Modified.IsZero() {
			it.Modified = it.Created
		}
		_, err := sq.Insert("items").
			Columns("id", "parent_id", "folder_id", "kind", "name", "sort_name",
				"album", "album_id", "album_artist", "artist_id", "genres",
				"track", "disc", "year", "size", "duration", "bitrate",
				"path", "image_path", "image_embedded",
				"created", "modified", "premiere_date", "scanned_at").
			Values(it.ID, it.ParentID, it.FolderID, string(it.Kind), it.Name, it.SortName,
				it.Album, it.AlbumID, it.AlbumArtist, it.ArtistID, joinGenres(it.Genres),
				it.Track, it.Disc, it.Year, it.Size, it.Duration, it.BitRate,
				it.Path, it.ImagePath, it.ImageEmbedded,
				it.Created, it.Modified, it.PremiereDate, scannedAt).
			Suffix(upsertItem).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return 0, fmt.Errorf("save %s %s: %w", it.Kind, it.Name, err)
		}
	}

	res, err := sq.Delete("items").Where(sq.NotEq{"scanned_at": scannedAt}).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune items: %w", err)
	}
	removed, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, "DELETE FROM annotations WHERE item_id NOT IN (SELECT id FROM items)"); err != nil {
		return 0, fmt.Errorf("prune annotations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit scan: %w", err)
	}
	return removed, nil
}
