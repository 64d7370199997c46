package tpl

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/config"
)

func TestNew_EmbeddedDefaults(t *testing.T) {
	cfg := config.New()
	tmpl, err := New(afero.NewMemMapFs(), cfg)
	require.NoError(t, err)

	_, found := tmpl.Lookup("page")
	require.True(t, found)
	_, found = tmpl.Lookup("list")
	require.True(t, found)
	_, found = tmpl.Lookup("nope")
	require.False(t, found)
}

func TestNew_ProjectLayoutShadowsEmbedded(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/layouts/page.html", []byte("custom: {{ .Title }}"), 0o644))

	cfg := config.NewFrom(maps.Params{"layoutDir": "/layouts"})
	tmpl, err := New(fs, cfg)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, tmpl.Execute(&b, "page", struct{ Title string }{"Hi"}))
	require.Equal(t, "custom: Hi", b.String())

	// The list template still comes from the embedded defaults.
	_, found := tmpl.Lookup("list")
	require.True(t, found)
}

func TestNew_ProjectAddsNewTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/layouts/lesson.html", []byte("lesson"), 0o644))

	cfg := config.NewFrom(maps.Params{"layoutDir": "/layouts"})
	tmpl, err := New(fs, cfg)
	require.NoError(t, err)

	_, found := tmpl.Lookup("lesson")
	require.True(t, found)
}

func TestNew_BrokenTemplateFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/layouts/page.html", []byte("{{ .Broken"), 0o644))

	cfg := config.NewFrom(maps.Params{"layoutDir": "/layouts"})
	_, err := New(fs, cfg)
	require.Error(t, err)
}

func TestExecute_UnknownTemplate(t *testing.T) {
	tmpl, err := New(afero.NewMemMapFs(), config.New())
	require.NoError(t, err)

	var b bytes.Buffer
	require.Error(t, tmpl.Execute(&b, "missing", nil))
}

func TestTemplateFuncs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/layouts/t.html",
		[]byte(`{{ upper "a" }}{{ lower "B" }}{{ dateFormat "2006" "2024-01-15" }}`), 0o644))

	cfg := config.NewFrom(maps.Params{"layoutDir": "/layouts"})
	tmpl, err := New(fs, cfg)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, tmpl.Execute(&b, "t", nil))
	require.Equal(t, "Ab2024", b.String())
}
