// Package config loads the server configuration.
//
// Values are layered in this order, later layers winning:
//  1. built-in defaults
//  2. an optional YAML file (config.yaml, or the path given explicitly)
//  3. SONICBRIDGE_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// EnvPrefix prefixes every configuration environment variable.
	EnvPrefix = "SONICBRIDGE_"
	// PathEnvVar names the config file when no path is passed to Load.
	PathEnvVar = EnvPrefix + "CONFIG"
)

// DefaultPaths are tried in order when no config file is named.
var DefaultPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Library  LibraryConfig  `koanf:"library"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

type ServerConfig struct {
	// Listen is the HTTP listen address.
	Listen string `koanf:"listen"`
	// BasePath mounts the Subsonic routes below a prefix, e.g. "/subsonic".
	BasePath string `koanf:"base_path"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type FolderConfig struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"`
}

type LibraryConfig struct {
	Folders []FolderConfig `koanf:"folders"`
	// ScanSchedule is a standard five field cron expression. Empty disables
	// scheduled scans.
	ScanSchedule  string `koanf:"scan_schedule"`
	ScanOnStartup bool   `koanf:"scan_on_startup"`
	// IgnoredArticles are leading words skipped when sorting and indexing
	// names.
	IgnoredArticles string `koanf:"ignored_articles"`
}

type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is json or console.
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Listen: ":4040"},
		Database: DatabaseConfig{Path: "./sonicbridge.db"},
		Library: LibraryConfig{
			ScanSchedule:    "0 3 * * *",
			ScanOnStartup:   true,
			IgnoredArticles: "The El La Los Las Le Les",
		},
		Log:     LogConfig{Level: "info", Format: "console"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// file named by SONICBRIDGE_CONFIG or the first of DefaultPaths is used if
// present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processFolders(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(PathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envKeys = map[string]string{
	"server_listen":            "server.listen",
	"server_base_path":         "server.base_path",
	"database_path":            "database.path",
	"library_folders":          "library.folders",
	"library_scan_schedule":    "library.scan_schedule",
	"library_scan_on_startup":  "library.scan_on_startup",
	"library_ignored_articles": "library.ignored_articles",
	"log_level":                "log.level",
	"log_format":               "log.format",
	"metrics_enabled":          "metrics.enabled",
}

// envTransformFunc maps SONICBRIDGE_LOG_LEVEL to log.level. Unknown
// variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envKeys[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))]
}

// processFolders turns an environment value of the form
// "Music=/srv/music,Podcasts=/srv/pods" into a folder list. A bare path is
// named after its last element by the scanner.
func processFolders(k *koanf.Koanf) error {
	s, ok := k.Get("library.folders").(string)
	if !ok {
		return nil
	}
	var folders []map[string]any
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, found := strings.Cut(part, "=")
		if !found {
			name, path = "", name
		}
		folders = append(folders, map[string]any{
			"name": strings.TrimSpace(name),
			"path": strings.TrimSpace(path),
		})
	}
	if err := k.Set("library.folders", folders); err != nil {
		return fmt.Errorf("failed to set library.folders: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Listen) == "" {
		return errors.New("server.listen is required")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	for i, f := range c.Library.Folders {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("library.folders[%d]: path is required", i)
		}
	}
	if c.Library.ScanSchedule != "" {
		if _, err := cron.ParseStandard(c.Library.ScanSchedule); err != nil {
			return fmt.Errorf("library.scan_schedule: %w", err)
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q must be json or console", c.Log.Format)
	}
	return nil
}
