package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/getlectern/lectern/common/maps"
)

func TestFromFile_TOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `title = "My Course"
baseURL = "https://example.org/"

[params]
author = "Jo"
`
	require.NoError(t, afero.WriteFile(fs, "config.toml", []byte(data), 0o644))

	cfg, err := FromFile(fs, "config.toml")
	require.NoError(t, err)
	require.Equal(t, "My Course", cfg.GetString("title"))
	require.Equal(t, "https://example.org/", cfg.GetString("baseURL"))
	require.Equal(t, "Jo", cfg.GetParams("params")["author"])

	// Defaults kick in for everything optional.
	require.Equal(t, "content", cfg.GetString("contentDir"))
	require.Equal(t, "public", cfg.GetString("publishDir"))
	require.False(t, cfg.GetBool("minify"))
}

func TestFromFile_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "title: My Course\nbaseURL: https://example.org/\n"
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte(data), 0o644))

	cfg, err := FromFile(fs, "config.yaml")
	require.NoError(t, err)
	require.Equal(t, "My Course", cfg.GetString("title"))
}

func TestFromFile_MissingRequiredKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.toml", []byte(`baseURL = "https://example.org/"`), 0o644))

	_, err := FromFile(fs, "config.toml")
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "title", cerr.Key)
}

func TestFromFile_FileNotFound(t *testing.T) {
	_, err := FromFile(afero.NewMemMapFs(), "missing.toml")
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
}

func TestValidate(t *testing.T) {
	cfg := NewFrom(maps.Params{"title": "T", "baseURL": "https://example.org/"})
	require.NoError(t, Validate(cfg))

	require.Error(t, Validate(NewFrom(maps.Params{"title": "T"})))
	require.Error(t, Validate(NewFrom(maps.Params{"baseURL": "x"})))
}

func TestProvider_KeysAreCaseInsensitive(t *testing.T) {
	cfg := New()
	cfg.Set("baseURL", "https://example.org/")

	require.Equal(t, "https://example.org/", cfg.GetString("baseurl"))
	require.Equal(t, "https://example.org/", cfg.GetString("BaseURL"))
	require.True(t, cfg.IsSet("baseurl"))
}

func TestProvider_NestedKeys(t *testing.T) {
	cfg := NewFrom(maps.Params{
		"markup": maps.Params{
			"highlight": maps.Params{"style": "dracula"},
		},
	})

	require.Equal(t, "dracula", cfg.GetString("markup.highlight.style"))
	m := cfg.GetStringMap("markup")
	require.Contains(t, m, "highlight")
}

func TestSetDefaults_DoesNotOverride(t *testing.T) {
	cfg := NewFrom(maps.Params{"contentDir": "lessons"})
	SetBaseDefaults(cfg)

	require.Equal(t, "lessons", cfg.GetString("contentDir"))
	require.Equal(t, "layouts", cfg.GetString("layoutDir"))
}
