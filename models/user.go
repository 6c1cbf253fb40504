package models

// HostUser is an account of the host media server.
type HostUser struct {
	ID   string
	Name string
}

// PluginUser links a host account to its Subsonic credentials.
// Password holds the shadow password used for Subsonic clients; it is
// stored in plain text because token authentication needs it.
type PluginUser struct {
	HostUserID string
	Password   string
	Options    PluginUserOptions
}

// PluginUserOptions are per-user switches for the Subsonic bridge.
type PluginUserOptions struct {
	// TokenAuth allows the md5(password+salt) token scheme.
	TokenAuth bool
	// Admin allows describing other users through getUser.
	Admin bool
}

// DefaultPluginUserOptions returns the options a newly linked user gets.
func DefaultPluginUserOptions() PluginUserOptions {
	return PluginUserOptions{TokenAuth: true}
}
