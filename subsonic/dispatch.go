package subsonic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// Method is a Subsonic API method name as it appears in the request path.
type Method string

const (
	MethodGetAlbum          Method = "getAlbum"
	MethodGetArtist         Method = "getArtist"
	MethodGetArtists        Method = "getArtists"
	MethodPing              Method = "ping"
	MethodGetLicense        Method = "getLicense"
	MethodGetSong           Method = "getSong"
	MethodGetMusicFolders   Method = "getMusicFolders"
	MethodGetMusicDirectory Method = "getMusicDirectory"
	MethodGetCoverArt       Method = "getCoverArt"
	MethodDownload          Method = "download"
	MethodStream            Method = "stream"
	MethodGetGenres         Method = "getGenres"
	MethodGetIndexes        Method = "getIndexes"
	MethodGetAlbumList      Method = "getAlbumList"
	MethodGetAlbumList2     Method = "getAlbumList2"
	MethodSearch2           Method = "search2"
	MethodSearch3           Method = "search3"
	MethodGetUser           Method = "getUser"
	MethodGetArtistInfo     Method = "getArtistInfo"
	MethodGetArtistInfo2    Method = "getArtistInfo2"
)

// MethodFromPath derives the method name from a request path or its last
// segment. Everything from the first dot on is dropped, so "getAlbum.view"
// and "getAlbum" name the same method.
func MethodFromPath(p string) Method {
	name := path.Base(p)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return Method(name)
}

type handlerFunc func(p *Plugin, ctx context.Context, user AuthenticatedUser, params RequestParams) Result

type route struct {
	handle   handlerFunc
	required []string
}

var routes = map[Method]route{
	MethodGetAlbum:          {(*Plugin).getAlbum, []string{"id"}},
	MethodGetArtist:         {(*Plugin).getArtist, []string{"id"}},
	MethodGetArtists:        {(*Plugin).getArtists, nil},
	MethodPing:              {(*Plugin).ping, nil},
	MethodGetLicense:        {(*Plugin).getLicense, nil},
	MethodGetSong:           {(*Plugin).getSong, []string{"id"}},
	MethodGetMusicFolders:   {(*Plugin).getMusicFolders, nil},
	MethodGetMusicDirectory: {(*Plugin).getMusicDirectory, []string{"id"}},
	MethodGetCoverArt:       {(*Plugin).getCoverArt, []string{"id"}},
	MethodDownload:          {(*Plugin).download, []string{"id"}},
	MethodStream:            {(*Plugin).download, []string{"id"}},
	MethodGetGenres:         {(*Plugin).getGenres, nil},
	MethodGetIndexes:        {(*Plugin).getIndexes, nil},
	MethodGetAlbumList:      {(*Plugin).getAlbumList, []string{"type"}},
	MethodGetAlbumList2:     {(*Plugin).getAlbumList2, []string{"type"}},
	MethodSearch2:           {(*Plugin).search2, []string{"query"}},
	MethodSearch3:           {(*Plugin).search3, []string{"query"}},
	MethodGetUser:           {(*Plugin).getUser, []string{"username"}},
	MethodGetArtistInfo:     {(*Plugin).getArtistInfo, []string{"id"}},
	MethodGetArtistInfo2:    {(*Plugin).getArtistInfo2, []string{"id"}},
}

// Methods returns the names of all supported methods.
func Methods() []Method {
	out := make([]Method, 0, len(routes))
	for m := range routes {
		out = append(out, m)
	}
	return out
}

// Result is the outcome of a dispatched request: an *EnvelopeResult, a
// *BinaryResult or a *StatusResult.
type Result interface {
	outcome() string
}

// EnvelopeResult is a subsonic-response document. It is always sent with
// HTTP 200, including failed envelopes.
type EnvelopeResult struct {
	Envelope *Envelope
}

// BinaryResult is raw file content.
type BinaryResult struct {
	ContentType string
	Name        string
	ModTime     time.Time
	Content     io.ReadSeeker
	// Closer, when set, releases Content after it has been sent.
	Closer io.Closer
}

// StatusResult is a bare HTTP status without a body.
type StatusResult struct {
	Code int
}

func (r *EnvelopeResult) outcome() string { return r.Envelope.Status }
func (r *BinaryResult) outcome() string   { return "binary" }
func (r *StatusResult) outcome() string   { return http.StatusText(r.Code) }

func ok(data ResponseData) Result {
	return &EnvelopeResult{Envelope: NewEnvelope(data)}
}

func fail(code ErrorCode, message string) Result {
	return &EnvelopeResult{Envelope: NewErrorEnvelope(code, message)}
}

func missingParam(name string) Result {
	return fail(CodeMissingParam, "Required parameter is missing: "+name)
}

// Dispatch runs one request through the common parameter check,
// authentication, the method table and the method's own parameter check,
// then invokes the handler.
func (p *Plugin) Dispatch(ctx context.Context, method string, params RequestParams) Result {
	m := MethodFromPath(method)
	start := time.Now()
	res := p.dispatch(ctx, m, params)
	recordRequest(m, res.outcome(), time.Since(start))
	return res
}

func (p *Plugin) dispatch(ctx context.Context, m Method, params RequestParams) Result {
	if params.MissingCommon() {
		return missingParam(commonParamsMissing)
	}

	user, err := p.auth.Authenticate(ctx, params)
	if err != nil {
		code := CodeInvalidCredentials
		if errors.Is(err, ErrTokenAuthDisabled) {
			code = CodeTokenNotSupported
		}
		AuthFailuresTotal.WithLabelValues(code.String()).Inc()
		return fail(code, "")
	}

	rt, found := routes[m]
	if !found {
		p.log.Debug().Str("method", string(m)).Msg("Unknown Subsonic method")
		return &StatusResult{Code: http.StatusNotFound}
	}
	if missing := params.MissingNamed(rt.required...); missing != "" {
		return missingParam(missing)
	}
	return rt.handle(p, ctx, user, params)
}
