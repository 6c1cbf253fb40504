package subsonic

import (
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"sonicbridge/mock"
	"sonicbridge/models"
)

var alice = &models.HostUser{ID: "host-alice", Name: "alice"}

func newTestPlugin(t *testing.T, users ...models.PluginUser) (*Plugin, *mock.MockLibrary) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lib := mock.NewMockLibrary(ctrl)
	if len(users) == 0 {
		users = []models.PluginUser{{
			HostUserID: alice.ID,
			Password:   "secret",
			Options:    models.DefaultPluginUserOptions(),
		}}
	}
	p := New(Options{
		Library:         lib,
		Users:           NewUserTable(users),
		Logger:          zerolog.Nop(),
		IgnoredArticles: "The El La",
	})
	return p, lib
}

// expectLogin allows any number of host user lookups for alice.
func expectLogin(lib *mock.MockLibrary) {
	lib.EXPECT().FindUserByName(gomock.Any(), "alice").Return(alice, nil).AnyTimes()
}

// validParams returns a request that authenticates as alice, extended by
// kv pairs.
func validParams(kv ...string) RequestParams {
	v := url.Values{"u": {"alice"}, "p": {"secret"}, "v": {"1.16.1"}, "c": {"test"}}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return NewRequestParams(v)
}

func intPtr(n int) *int { return &n }

func envelopeOf(t *testing.T, res Result) *Envelope {
	t.Helper()
	er, ok := res.(*EnvelopeResult)
	if !ok {
		t.Fatalf("expected *EnvelopeResult, got %T", res)
	}
	return er.Envelope
}

func errorOf(t *testing.T, res Result) *Error {
	t.Helper()
	env := envelopeOf(t, res)
	e, ok := env.Data.(*Error)
	if !ok || env.Status != statusFailed {
		t.Fatalf("expected failed envelope, got status %q with %T", env.Status, env.Data)
	}
	return e
}
