package subsonic

import (
	"net/http"
	"net/url"
	"strings"
)

const commonParamsMissing = "one of common parameters (username, client, etc...)"

// RequestParams is a snapshot of every request key the bridge understands.
// Absent keys are empty strings.
type RequestParams struct {
	Username        string
	Password        string
	Token           string
	Salt            string
	Version         string
	Client          string
	Format          string
	ID              string
	MusicFolderID   string
	IfModifiedSince string
	Type            string
	Size            string
	Offset          string
	FromYear        string
	ToYear          string
	Genre           string
	Query           string
	ArtistCount     string
	ArtistOffset    string
	AlbumCount      string
	AlbumOffset     string
	SongCount       string
	SongOffset      string
	TargetUsername  string
}

// paramField binds a RequestParams field to its wire key and to the name
// used by required-parameter lists.
type paramField struct {
	name string
	key  string
	ptr  func(p *RequestParams) *string
}

var paramFields = []paramField{
	{"username", "u", func(p *RequestParams) *string { return &p.Username }},
	{"password", "p", func(p *RequestParams) *string { return &p.Password }},
	{"token", "t", func(p *RequestParams) *string { return &p.Token }},
	{"salt", "s", func(p *RequestParams) *string { return &p.Salt }},
	{"version", "v", func(p *RequestParams) *string { return &p.Version }},
	{"client", "c", func(p *RequestParams) *string { return &p.Client }},
	{"format", "f", func(p *RequestParams) *string { return &p.Format }},
	{"id", "id", func(p *RequestParams) *string { return &p.ID }},
	{"musicfolderid", "musicFolderId", func(p *RequestParams) *string { return &p.MusicFolderID }},
	{"ifmodifiedsince", "ifModifiedSince", func(p *RequestParams) *string { return &p.IfModifiedSince }},
	{"type", "type", func(p *RequestParams) *string { return &p.Type }},
	{"size", "size", func(p *RequestParams) *string { return &p.Size }},
	{"offset", "offset", func(p *RequestParams) *string { return &p.Offset }},
	{"fromyear", "fromYear", func(p *RequestParams) *string { return &p.FromYear }},
	{"toyear", "toYear", func(p *RequestParams) *string { return &p.ToYear }},
	{"genre", "genre", func(p *RequestParams) *string { return &p.Genre }},
	{"query", "query", func(p *RequestParams) *string { return &p.Query }},
	{"artistcount", "artistCount", func(p *RequestParams) *string { return &p.ArtistCount }},
	{"artistoffset", "artistOffset", func(p *RequestParams) *string { return &p.ArtistOffset }},
	{"albumcount", "albumCount", func(p *RequestParams) *string { return &p.AlbumCount }},
	{"albumoffset", "albumOffset", func(p *RequestParams) *string { return &p.AlbumOffset }},
	{"songcount", "songCount", func(p *RequestParams) *string { return &p.SongCount }},
	{"songoffset", "songOffset", func(p *RequestParams) *string { return &p.SongOffset }},
	{"targetusername", "username", func(p *RequestParams) *string { return &p.TargetUsername }},
}

var paramsByName = func() map[string]paramField {
	m := make(map[string]paramField, len(paramFields))
	for _, f := range paramFields {
		m[f.name] = f
	}
	return m
}()

// NewRequestParams builds a RequestParams from key/value pairs. Keys are
// matched case-sensitively and only the first value of each key is kept.
func NewRequestParams(values url.Values) RequestParams {
	var p RequestParams
	for _, f := range paramFields {
		*f.ptr(&p) = values.Get(f.key)
	}
	return p
}

// ExtractParams reads the query string of GET requests and the form body of
// everything else.
func ExtractParams(r *http.Request) RequestParams {
	if r.Method == http.MethodGet {
		return NewRequestParams(r.URL.Query())
	}
	if err := r.ParseForm(); err != nil {
		return RequestParams{}
	}
	return NewRequestParams(r.PostForm)
}

// TokenAuthPossible reports whether both token and salt were sent.
func (p RequestParams) TokenAuthPossible() bool {
	return p.Token != "" && p.Salt != ""
}

// MissingCommon reports whether a parameter every method needs is absent.
// The format key is not required; several clients never send it.
func (p RequestParams) MissingCommon() bool {
	authPossible := p.TokenAuthPossible() || p.Password != ""
	return p.Username == "" || p.Version == "" || p.Client == "" || !authPossible
}

// MissingNamed returns the first of names whose parameter is empty, in the
// order given. Names are matched case-insensitively against the
// RequestParams field names; an unknown name counts as missing. When all
// of them are present it falls back to the common check and returns a
// fixed description if that fails, or an empty string.
func (p RequestParams) MissingNamed(names ...string) string {
	for _, n := range names {
		name := strings.ToLower(n)
		f, ok := paramsByName[name]
		if !ok || *f.ptr(&p) == "" {
			return name
		}
	}
	if p.MissingCommon() {
		return commonParamsMissing
	}
	return ""
}

// Format is the serialization requested by a client.
type Format int

const (
	FormatXML Format = iota
	FormatJSON
)

// FormatFromString maps the f parameter to a Format. Only the exact value
// "json" selects JSON.
func FormatFromString(f string) Format {
	if f == "json" {
		return FormatJSON
	}
	return FormatXML
}

// ResponseFormat is the Format the client asked for.
func (p RequestParams) ResponseFormat() Format {
	return FormatFromString(p.Format)
}
