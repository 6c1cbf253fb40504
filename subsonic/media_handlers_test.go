package subsonic

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sonicbridge/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.NRGBA{R: 200, A: 255})
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestAudioMIMEType(t *testing.T) {
	tests := map[string]string{
		"/m/a.flac": "audio/flac",
		"/m/a.MP3":  "audio/mpeg",
		"/m/a.ogg":  "audio/ogg",
		"/m/a.opus": "audio/opus",
		"/m/a.wav":  "audio/wav",
		"/m/a.m4a":  "audio/basic",
		"/m/noext":  "audio/basic",
	}
	for in, want := range tests {
		assert.Equal(t, want, audioMIMEType(in), in)
	}
}

func TestGetCoverArt_Original(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	img := pngBytes(t, 40, 20)
	item := models.Item{ID: "al1", Kind: models.KindAlbum, ImagePath: "/m/cover.png"}
	lib.EXPECT().FindByID(gomock.Any(), "al1").Return(&item, nil)
	lib.EXPECT().OpenImage(gomock.Any(), item).Return(io.NopCloser(bytes.NewReader(img)), "image/png", nil)

	res := p.Dispatch(context.Background(), "getCoverArt", validParams("id", "al1"))

	bin, ok := res.(*BinaryResult)
	require.True(t, ok)
	assert.Equal(t, "image/png", bin.ContentType)
	got, err := io.ReadAll(bin.Content)
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestGetCoverArt_Resized(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	item := models.Item{ID: "al1", Kind: models.KindAlbum, ImagePath: "/m/cover.png"}
	lib.EXPECT().FindByID(gomock.Any(), "al1").Return(&item, nil)
	lib.EXPECT().OpenImage(gomock.Any(), item).Return(io.NopCloser(bytes.NewReader(pngBytes(t, 40, 20))), "image/png", nil)

	res := p.Dispatch(context.Background(), "getCoverArt", validParams("id", "al1", "size", "10"))

	bin := res.(*BinaryResult)
	decoded, err := imaging.Decode(bin.Content)
	require.NoError(t, err)
	assert.Equal(t, 10, decoded.Bounds().Dx())
	assert.Equal(t, 5, decoded.Bounds().Dy())
}

func TestGetCoverArt_OpenFailureIs204(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	item := models.Item{ID: "s1", Kind: models.KindSong, ImagePath: "/m/gone.jpg"}
	lib.EXPECT().FindByID(gomock.Any(), "s1").Return(&item, nil)
	lib.EXPECT().OpenImage(gomock.Any(), item).Return(nil, "", os.ErrNotExist)

	res := p.Dispatch(context.Background(), "getCoverArt", validParams("id", "s1"))
	assert.Equal(t, &StatusResult{Code: http.StatusNoContent}, res)
}

func TestGetCoverArt_UnknownID(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)
	lib.EXPECT().FindByID(gomock.Any(), "nope").Return(nil, nil)

	res := p.Dispatch(context.Background(), "getCoverArt", validParams("id", "nope"))
	assert.Equal(t, "70", errorOf(t, res).Code)
}

func TestDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS-data"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)

	for _, method := range []string{"download", "stream.view"} {
		t.Run(method, func(t *testing.T) {
			p, lib := newTestPlugin(t)
			expectLogin(lib)

			song := models.Item{ID: "s1", Kind: models.KindSong, Path: path}
			lib.EXPECT().FindByID(gomock.Any(), "s1").Return(&song, nil)
			lib.EXPECT().OpenMedia(gomock.Any(), song).Return(f, nil)

			res := p.Dispatch(context.Background(), method, validParams("id", "s1"))

			bin, ok := res.(*BinaryResult)
			require.True(t, ok)
			assert.Equal(t, "audio/ogg", bin.ContentType)
			assert.Equal(t, f, bin.Closer)
			_, err := bin.Content.Seek(0, io.SeekStart)
			require.NoError(t, err)
			body, err := io.ReadAll(bin.Content)
			require.NoError(t, err)
			assert.Equal(t, "OggS-data", string(body))
		})
	}
	require.NoError(t, f.Close())
}

func TestDownload_OpenFailure(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)

	song := models.Item{ID: "s1", Kind: models.KindSong, Path: "/gone.mp3"}
	lib.EXPECT().FindByID(gomock.Any(), "s1").Return(&song, nil)
	lib.EXPECT().OpenMedia(gomock.Any(), song).Return(nil, errors.New("no such file"))

	res := p.Dispatch(context.Background(), "download", validParams("id", "s1"))
	assert.Equal(t, &StatusResult{Code: http.StatusNotFound}, res)
}

func TestDownload_NotASong(t *testing.T) {
	p, lib := newTestPlugin(t)
	expectLogin(lib)
	lib.EXPECT().FindByID(gomock.Any(), "al1").Return(&models.Item{ID: "al1", Kind: models.KindAlbum}, nil)

	res := p.Dispatch(context.Background(), "download", validParams("id", "al1"))
	assert.Equal(t, "70", errorOf(t, res).Code)
}
