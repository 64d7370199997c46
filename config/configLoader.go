package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/parser/metadecoders"
)

// ValidConfigFileExtensions lists the config formats we can decode.
var ValidConfigFileExtensions = []string{"toml", "yaml", "yml"}

// requiredKeys must be present in the site configuration. They feed the
// shared page template and cannot be defaulted.
var requiredKeys = []string{"title", "baseurl"}

// FromFile loads the configuration from the given filename,
// applies defaults and validates the result.
func FromFile(fs afero.Fs, filename string) (Provider, error) {
	m, err := loadConfigFromFile(fs, filename)
	if err != nil {
		return nil, &ConfigError{Key: filename, Reason: err.Error()}
	}

	cfg := NewFrom(m)
	SetBaseDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromFileToMap is the same as FromFile, but it returns the config values
// as a simple map.
func FromFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	return loadConfigFromFile(fs, filename)
}

func loadConfigFromFile(fs afero.Fs, filename string) (map[string]any, error) {
	return metadecoders.Default.UnmarshalFileToMap(fs, filename)
}

// SetBaseDefaults fills in the documented defaults for all optional keys.
func SetBaseDefaults(cfg Provider) {
	cfg.SetDefaults(maps.Params{
		"contentDir":   "content",
		"layoutDir":    "layouts",
		"publishDir":   "public",
		"ignoreFiles":  []string{},
		"enableEmoji":  false,
		"minify":       false,
		"canonifyURLs": false,
	})
}

// Validate checks that all required keys are set.
func Validate(cfg Provider) error {
	for _, k := range requiredKeys {
		if cfg.GetString(k) == "" {
			return &ConfigError{Key: k, Reason: "required key is missing or empty"}
		}
	}
	return nil
}

// ConfigError means the global site configuration is unusable. It is
// always fatal to the whole build.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}
