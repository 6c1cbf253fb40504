package subsonic

import (
	"context"
	"strings"
)

func (p *Plugin) ping(context.Context, AuthenticatedUser, RequestParams) Result {
	return ok(nil)
}

func (p *Plugin) getLicense(context.Context, AuthenticatedUser, RequestParams) Result {
	return ok(&License{Valid: true})
}

// getUser describes the user named by the username key, defaulting to the
// caller. Only admins may look at other users.
func (p *Plugin) getUser(ctx context.Context, user AuthenticatedUser, params RequestParams) Result {
	target := params.TargetUsername
	if target == "" {
		target = params.Username
	}
	if !strings.EqualFold(target, user.Name()) && !user.IsAdmin() {
		return fail(CodeNotAuthorized, "")
	}

	host, err := p.library.FindUserByName(ctx, target)
	if err != nil {
		return p.libraryError(err, "user")
	}
	if host == nil {
		return fail(CodeDataNotFound, "")
	}
	linked, _ := p.users.Lookup(host.ID)

	folders, err := p.library.QueryFolders(ctx)
	if err != nil {
		return p.libraryError(err, "music folders")
	}
	out := &User{
		Username:     host.Name,
		AdminRole:    linked.Options.Admin,
		DownloadRole: true,
		CoverArtRole: true,
		StreamRole:   true,
	}
	for _, f := range folders {
		out.Folders = append(out.Folders, f.ID)
	}
	return ok(out)
}
