package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonicbridge/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanUntaggedFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "01 - First.mp3"), "not really audio")
	writeFile(t, filepath.Join(root, "a", "cover.jpg"), "jpeg")
	writeFile(t, filepath.Join(root, "b", "Second.flac"), "not really audio")
	writeFile(t, filepath.Join(root, "b", "notes.txt"), "ignored")

	sc := NewScanner(s, zerolog.Nop(), "The")
	stats, err := sc.Scan(ctx, []Folder{{Name: "Music", Path: root}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Folders)
	assert.Equal(t, 1, stats.Artists)
	assert.Equal(t, 0, stats.Albums)
	assert.Equal(t, 2, stats.Songs)

	folders, err := s.QueryFolders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Music", folders[0].Name)

	children, err := s.QueryChildren(ctx, folders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{unknownArtist, "01 - First", "Second"}, names(children))

	first := children[1]
	assert.Equal(t, models.KindSong, first.Kind)
	assert.Equal(t, filepath.Join(root, "a", "cover.jpg"), first.ImagePath)
	assert.False(t, first.ImageEmbedded)
	require.NotNil(t, first.Size)
	assert.EqualValues(t, len("not really audio"), *first.Size)
	assert.Equal(t, entityID(models.KindSong, filepath.Join(root, "a", "01 - First.mp3")), first.ID)
}

func TestRescanPrunesAndKeepsAnnotations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	root := t.TempDir()
	keep := filepath.Join(root, "keep.mp3")
	gone := filepath.Join(root, "gone.mp3")
	writeFile(t, keep, "x")
	writeFile(t, gone, "y")

	sc := NewScanner(s, zerolog.Nop(), "")
	folders := []Folder{{Name: "Music", Path: root}}
	_, err := sc.Scan(ctx, folders)
	require.NoError(t, err)

	keepID := entityID(models.KindSong, keep)
	goneID := entityID(models.KindSong, gone)
	require.NoError(t, s.SetFavorite(ctx, keepID, true))
	require.NoError(t, s.SetFavorite(ctx, goneID, true))
	before, err := s.FindByID(ctx, keepID)
	require.NoError(t, err)

	require.NoError(t, os.Remove(gone))
	stats, err := sc.Scan(ctx, folders)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Removed)

	kept, err := s.FindByID(ctx, keepID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.NotNil(t, kept.Favorite)
	assert.True(t, before.Created.Equal(kept.Created))

	removed, err := s.FindByID(ctx, goneID)
	require.NoError(t, err)
	assert.Nil(t, removed)

	var annotations int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM annotations").Scan(&annotations))
	assert.Equal(t, 1, annotations)
}

func TestScanMissingFolder(t *testing.T) {
	s := newTestStore(t)
	sc := NewScanner(s, zerolog.Nop(), "")

	_, err := sc.Scan(context.Background(), []Folder{{Path: filepath.Join(t.TempDir(), "missing")}})
	assert.Error(t, err)
}

func TestScanInProgress(t *testing.T) {
	s := newTestStore(t)
	sc := NewScanner(s, zerolog.Nop(), "")
	sc.mu.Lock()
	defer sc.mu.Unlock()

	_, err := sc.Scan(context.Background(), nil)
	assert.ErrorIs(t, err, ErrScanInProgress)
}

func TestScanCancelled(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "song.mp3"), "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(s, zerolog.Nop(), "").Scan(ctx, []Folder{{Path: root}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortName(t *testing.T) {
	sc := NewScanner(nil, zerolog.Nop(), "The El La")

	tests := map[string]string{
		"The Beatles": "Beatles",
		"the who":     "who",
		"El Guincho":  "Guincho",
		"Theatre":     "Theatre",
		"The":         "The",
		"ABBA":        "ABBA",
	}
	for in, want := range tests {
		assert.Equal(t, want, sc.sortName(in), in)
	}
}

func TestSplitGenreTag(t *testing.T) {
	assert.Equal(t, []string{"Rock", "Pop"}, splitGenreTag("Rock; Pop"))
	assert.Equal(t, []string{"Jazz", "Funk"}, splitGenreTag("Jazz/Funk,"))
	assert.Nil(t, splitGenreTag(""))
}
