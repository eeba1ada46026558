// Package where resolves the filesystem locations used by the application.
package where

import (
	"os"
	"path/filepath"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "CRITIQUE_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the directory holding critique.toml and the optional .env file.
// CRITIQUE_CONFIG_PATH wins over the platform user config directory.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return mkdir(filepath.Join(base, constant.App))
}

// Cache is the directory for metadata caches and search history.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.App))
}

// Logs is the directory for rotated log files.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// AnimeCache is the gache file for metadata-backend anime records keyed by id.
func AnimeCache() string {
	return filepath.Join(Cache(), "jikan_anime.json")
}

// PageCache is the gache file for metadata-backend list pages (top and search).
func PageCache() string {
	return filepath.Join(Cache(), "jikan_pages.json")
}

// Queries is the search-query history used for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
