package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/platform"
)

const (
	// LocalConfigFile is looked up in the current directory
	LocalConfigFile = ".prodbar.yaml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PRODBAR"
)

// Find locates the config file:
// 1. explicit path (from --config)
// 2. .prodbar.yaml in the current directory
// 3. the per-user config directory
//
// An empty path means no file was found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", barerrors.WrapWithCode(err, barerrors.ErrConfig,
				"Config file not found: "+explicit,
				"check the --config path")
		}
		return explicit, nil
	}

	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile, nil
	}

	dir, err := platform.GetConfigDir()
	if err != nil {
		return "", nil
	}
	global := filepath.Join(dir, platform.ConfigFileName)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads the configuration. Without a file only defaults and
// environment variables apply.
func Load(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, barerrors.WrapWithCode(err, barerrors.ErrConfig,
					"Failed to read config file "+path,
					"check the file is valid YAML")
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, barerrors.WrapWithCode(err, barerrors.ErrConfig,
			"Invalid config format", "check the value types in "+path)
	}

	if cfg.Storage.Dir == "" {
		if dir, err := platform.GetDefaultStateDir(); err == nil {
			cfg.Storage.Dir = dir
		}
	}
	cfg.Storage.Dir = platform.ExpandHome(cfg.Storage.Dir)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("refresh_interval", def.RefreshInterval)
	v.SetDefault("language", def.Language)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.dir", def.Storage.Dir)
	v.SetDefault("window.padding", def.Window.Padding)
	v.SetDefault("window.min_width", def.Window.MinWidth)
	v.SetDefault("window.min_height", def.Window.MinHeight)
	v.SetDefault("window.max_width", def.Window.MaxWidth)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}
