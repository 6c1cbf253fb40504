package subsonic

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures a Plugin.
type Options struct {
	Library Library
	Users   *UserTable
	Logger  zerolog.Logger
	// IgnoredArticles is reported by getIndexes and getArtists.
	IgnoredArticles string
}

// Plugin serves the Subsonic REST API on top of a Library.
type Plugin struct {
	library         Library
	users           *UserTable
	auth            *Authenticator
	log             zerolog.Logger
	ignoredArticles string
}

// New returns a Plugin. A nil Users table means no user can log in.
func New(opts Options) *Plugin {
	log := opts.Logger.With().Str("component", "subsonic").Logger()
	users := opts.Users
	if users == nil {
		users = NewUserTable(nil)
	}
	return &Plugin{
		library:         opts.Library,
		users:           users,
		auth:            NewAuthenticator(opts.Library, users, log),
		log:             log,
		ignoredArticles: opts.IgnoredArticles,
	}
}

// Register installs the liveness probe and the REST endpoints on r.
func (p *Plugin) Register(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.Any("/rest/:method", p.handleREST)
}

func (p *Plugin) handleREST(c *gin.Context) {
	params := ExtractParams(c.Request)
	res := p.Dispatch(c.Request.Context(), c.Param("method"), params)
	p.write(c, params.ResponseFormat(), res)
}

func (p *Plugin) write(c *gin.Context, f Format, res Result) {
	switch r := res.(type) {
	case *EnvelopeResult:
		body, err := Serialize(r.Envelope, f)
		if err != nil {
			p.log.Error().Err(err).Msg("Failed to serialize Subsonic response")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, f.ContentType(), body)
	case *BinaryResult:
		if r.Closer != nil {
			defer r.Closer.Close()
		}
		c.Header("Content-Type", r.ContentType)
		http.ServeContent(c.Writer, c.Request, r.Name, r.ModTime, r.Content)
	case *StatusResult:
		c.Status(r.Code)
	}
}
