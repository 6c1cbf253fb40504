package subsonic

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sonicbridge/mock"
	"sonicbridge/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mock.MockLibrary) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	p, lib := newTestPlugin(t)
	r := gin.New()
	p.Register(r)
	return r, lib
}

const authQuery = "u=alice&p=secret&v=1.16.1&c=test"

func TestHTTP_LivenessProbe(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHTTP_PingXML(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/ping.view?"+authQuery, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">`)
}

func TestHTTP_PingJSON(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/ping?f=json&"+authQuery, nil))

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"subsonic-response":{"status":"ok","version":"1.16.1"}}`, w.Body.String())
}

func TestHTTP_FailedEnvelopeIsStill200(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/ping?f=json&u=alice&p=bad&v=1&c=x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subsonic-response":{"status":"failed","version":"1.16.1",
		"error":{"code":"40","message":"Wrong username or password."}}}`, w.Body.String())
}

func TestHTTP_PostForm(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	form := url.Values{"u": {"alice"}, "p": {"enc:736563726574"}, "v": {"1.16.1"}, "c": {"test"}, "f": {"json"}}
	req := httptest.NewRequest(http.MethodPost, "/rest/getLicense.view", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `{"subsonic-response":{"status":"ok","version":"1.16.1","license":{"valid":true}}}`, w.Body.String())
}

func TestHTTP_UnknownMethod(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/fooBar?"+authQuery, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHTTP_CoverArtAbsent(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)
	lib.EXPECT().FindByID(gomock.Any(), "al1").Return(&models.Item{ID: "al1", Kind: models.KindAlbum}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/getCoverArt?id=al1&"+authQuery, nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHTTP_StreamRange(t *testing.T) {
	r, lib := newTestRouter(t)
	expectLogin(lib)

	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)

	song := models.Item{ID: "s1", Kind: models.KindSong, Path: path}
	lib.EXPECT().FindByID(gomock.Any(), "s1").Return(&song, nil)
	lib.EXPECT().OpenMedia(gomock.Any(), song).Return(f, nil)

	req := httptest.NewRequest(http.MethodGet, "/rest/stream?id=s1&"+authQuery, nil)
	req.Header.Set("Range", "bytes=2-5")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "2345", w.Body.String())
}
