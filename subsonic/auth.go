package subsonic

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"sonicbridge/models"
)

var (
	// ErrInvalidCredentials is returned for every failed login. The
	// underlying reason is only logged.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenAuthDisabled is returned when a client sends a token and salt
	// for a user whose token authentication is switched off.
	ErrTokenAuthDisabled = errors.New("token authentication disabled for user")
)

// UserTable is the read-only set of linked plugin users, keyed by host user
// id. It is built once at startup and shared by all requests.
type UserTable struct {
	byHostID map[string]models.PluginUser
}

// NewUserTable copies users into a new table. Later entries for the same
// host user win; entries without a host user are dropped.
func NewUserTable(users []models.PluginUser) *UserTable {
	t := &UserTable{byHostID: make(map[string]models.PluginUser, len(users))}
	for _, u := range users {
		if u.HostUserID == "" {
			continue
		}
		t.byHostID[u.HostUserID] = u
	}
	return t
}

// Lookup returns the plugin user linked to hostUserID.
func (t *UserTable) Lookup(hostUserID string) (models.PluginUser, bool) {
	if t == nil {
		return models.PluginUser{}, false
	}
	u, ok := t.byHostID[hostUserID]
	return u, ok
}

// Len returns the number of linked users.
func (t *UserTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byHostID)
}

// AuthenticatedUser is a host user that passed credential validation. Only
// Authenticator produces non-zero values.
type AuthenticatedUser struct {
	id    string
	name  string
	admin bool
}

func (u AuthenticatedUser) ID() string    { return u.id }
func (u AuthenticatedUser) Name() string  { return u.name }
func (u AuthenticatedUser) IsAdmin() bool { return u.admin }

// Authenticator validates Subsonic credentials against the shadow passwords
// stored for linked users.
type Authenticator struct {
	users   *UserTable
	library Library
	log     zerolog.Logger
}

// NewAuthenticator returns an Authenticator reading host users from library
// and shadow passwords from users.
func NewAuthenticator(library Library, users *UserTable, log zerolog.Logger) *Authenticator {
	return &Authenticator{users: users, library: library, log: log}
}

// Authenticate checks the credentials in p. Token and salt take precedence
// over a password sent in the same request.
func (a *Authenticator) Authenticate(ctx context.Context, p RequestParams) (AuthenticatedUser, error) {
	log := a.log.With().Str("user", p.Username).Str("client", p.Client).Logger()

	hostUser, err := a.library.FindUserByName(ctx, p.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up host user")
		return AuthenticatedUser{}, ErrInvalidCredentials
	}
	var hostID string
	if hostUser != nil {
		hostID = hostUser.ID
	}

	pu, ok := a.users.Lookup(hostID)
	if !ok {
		log.Error().Msg("Subsonic configuration missing for user")
		return AuthenticatedUser{}, ErrInvalidCredentials
	}
	if pu.Password == "" {
		log.Warn().Msg("Subsonic password is not set for user")
		return AuthenticatedUser{}, ErrInvalidCredentials
	}

	user := AuthenticatedUser{id: hostUser.ID, name: hostUser.Name, admin: pu.Options.Admin}

	switch {
	case p.TokenAuthPossible():
		if !pu.Options.TokenAuth {
			log.Debug().Msg("Token authentication requested but disabled")
			return AuthenticatedUser{}, ErrTokenAuthDisabled
		}
		if saltedToken(pu.Password, p.Salt) == p.Token {
			return user, nil
		}
		log.Debug().Msg("Token mismatch")
	case p.Password != "":
		password, err := decodePassword(p.Password)
		if err != nil {
			log.Debug().Err(err).Msg("Cannot decode password")
			return AuthenticatedUser{}, ErrInvalidCredentials
		}
		if password == pu.Password {
			return user, nil
		}
		log.Debug().Msg("Password mismatch")
	default:
		log.Debug().Msg("Cannot authenticate: neither token nor password supplied")
	}
	return AuthenticatedUser{}, ErrInvalidCredentials
}

// saltedToken computes the lowercase hex md5 of password+salt.
func saltedToken(password, salt string) string {
	sum := md5.Sum([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// decodePassword undoes the optional "enc:" hex encoding of p.
func decodePassword(p string) (string, error) {
	if !strings.HasPrefix(p, "enc:") {
		return p, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(p, "enc:"))
	if err != nil {
		return "", fmt.Errorf("decode enc: password: %w", err)
	}
	return string(b), nil
}
