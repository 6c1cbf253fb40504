package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sonicbridge/models"
)

var (
	// ErrHostAuth is returned by AuthenticateHostUser for a wrong user name
	// or password.
	ErrHostAuth = errors.New("host authentication failed")
	// ErrUserExists is returned when creating a user whose name is taken.
	ErrUserExists = errors.New("user already exists")
)

// bcryptCost is the work factor for stored host passwords.
var bcryptCost = 14

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateHostUser adds a host account.
func (s *Store) CreateHostUser(ctx context.Context, name, password string) (*models.HostUser, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, errors.New("user name and password are required")
	}
	existing, err := s.FindUserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, name)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.HostUser{ID: uuid.NewString(), Name: name}
	_, err = sq.Insert("users").
		Columns("id", "username", "password_hash", "created").
		Values(u.ID, u.Name, hash, s.now()).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindUserByName returns the host account called name, ignoring case, or
// nil.
func (s *Store) FindUserByName(ctx context.Context, name string) (*models.HostUser, error) {
	u, _, err := s.findUser(ctx, name)
	return u, err
}

func (s *Store) findUser(ctx context.Context, name string) (*models.HostUser, string, error) {
	var (
		u    models.HostUser
		hash string
	)
	err := sq.Select("id", "username", "password_hash").
		From("users").
		Where(sq.Eq{"username": name}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user %s: %w", name, err)
	}
	return &u, hash, nil
}

// AuthenticateHostUser checks a host password. clientIP is only logged.
func (s *Store) AuthenticateHostUser(ctx context.Context, username, password, clientIP string) (*models.HostUser, error) {
	u, hash, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !checkPasswordHash(password, hash) {
		s.log.Warn().Str("user", username).Str("client_ip", clientIP).Msg("Host authentication failed")
		return nil, ErrHostAuth
	}
	return u, nil
}

// LoadPluginUsers returns every linked Subsonic user.
func (s *Store) LoadPluginUsers(ctx context.Context) ([]models.PluginUser, error) {
	rows, err := sq.Select("host_user_id", "password", "token_auth", "admin").
		From("plugin_users").
		OrderBy("host_user_id").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query plugin users: %w", err)
	}
	defer rows.Close()

	var users []models.PluginUser
	for rows.Next() {
		var u models.PluginUser
		if err := rows.Scan(&u.HostUserID, &u.Password, &u.Options.TokenAuth, &u.Options.Admin); err != nil {
			return nil, fmt.Errorf("scan plugin user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SavePluginUser creates or replaces the Subsonic link of a host user.
func (s *Store) SavePluginUser(ctx context.Context, u models.PluginUser) error {
	res, err := sq.Insert("plugin_users").
		Columns("host_user_id", "password", "token_auth", "admin").
		Select(sq.Select().
			Column("id").
			Column("?", u.Password).
			Column("?", u.Options.TokenAuth).
			Column("?", u.Options.Admin).
			From("users").
			Where(sq.Eq{"id": u.HostUserID})).
		Suffix("ON CONFLICT(host_user_id) DO UPDATE SET " +
			"password = excluded.password, token_auth = excluded.token_auth, admin = excluded.admin").
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("save plugin user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("host user %s: %w", u.HostUserID, ErrNotFound)
	}
	return nil
}
