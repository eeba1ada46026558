// Package config owns the viper configuration engine: defaults, environment bindings and the critique.toml file.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/filesystem"
	"github.com/animecritique/critique/where"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps configuration keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// FileName is the configuration file name inside where.Config().
var FileName = constant.App + ".toml"

// Setup registers defaults and environment bindings, then reads critique.toml if present.
// A .env file in the config directory or the working directory is loaded first; variables
// already present in the process environment win.
func Setup() error {
	if err := loadDotEnv(filepath.Join(where.Config(), ".env"), ".env"); err != nil {
		return err
	}

	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		if !filesystem.Exists(path) {
			continue
		}

		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
