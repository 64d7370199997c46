package site

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/frontmatter"
	"github.com/getlectern/lectern/lecternfs"
)

const workingDir = "/project"

func newTestSite(t *testing.T, files map[string]string, extra maps.Params) (*Site, afero.Fs) {
	t.Helper()

	params := maps.Params{
		"title":   "Test Course",
		"baseURL": "https://example.org/",
	}
	for k, v := range extra {
		params[k] = v
	}

	cfg := config.NewFrom(params)
	config.SetBaseDefaults(cfg)

	fs := afero.NewMemMapFs()
	for name, content := range files {
		path := filepath.Join(workingDir, name)
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	s, err := New(cfg, lecternfs.NewFrom(fs, cfg, workingDir))
	require.NoError(t, err)
	return s, fs
}

func published(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, filepath.Join(workingDir, "public", name))
	require.NoError(t, err)
	return string(b)
}

func publishedExists(t *testing.T, fs afero.Fs, name string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, filepath.Join(workingDir, "public", name))
	require.NoError(t, err)
	return ok
}

func TestBuild_SingleDocument(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/welcome.md": "---\ntitle: \"Test\"\n---\n# Hi\n",
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Rendered)
	require.Zero(t, res.Failed)

	out := published(t, fs, "welcome/index.html")
	require.Contains(t, out, ">Hi</h1>")
	require.Contains(t, out, "<title>Test | Test Course</title>")
}

func TestBuild_NoFrontMatterGetsDefaults(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/shell-basics.md": "# Basics\n\nSome text.\n",
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Rendered)

	out := published(t, fs, "shell-basics/index.html")
	require.Contains(t, out, "Shell basics")
	require.Contains(t, out, "Some text.")
}

func TestBuild_MalformedFrontMatterIsIsolated(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/good.md":   "---\ntitle: \"Good\"\n---\nfine\n",
		"content/broken.md": "---\ntitle: \"Broken\"\n# no closing fence\n",
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Rendered)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errs, 1)

	var perr *frontmatter.ParseError
	require.True(t, errors.As(res.Errs[0], &perr))
	require.Equal(t, "broken.md", perr.Filename)

	require.True(t, publishedExists(t, fs, "good/index.html"))
	require.False(t, publishedExists(t, fs, "broken/index.html"))
}

func TestBuild_SlugCollisionIsFatal(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/lessons/a.md": "---\nslug: \"intro\"\n---\nA\n",
		"content/lessons/b.md": "---\nslug: \"intro\"\n---\nB\n",
	}, nil)

	_, err := s.Build(context.Background())
	require.Error(t, err)

	var cerr *CollisionError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "lessons/intro/index.html", cerr.Path)

	// Nothing was written for the colliding pages.
	require.False(t, publishedExists(t, fs, "lessons/intro/index.html"))
}

func TestBuild_CodeFenceIsLiteralText(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/danger.md": "# Careful\n\n```sh\nrm -rf /tmp/scratch\n```\n\n```html\n<script>alert(1)</script>\n```\n",
	}, nil)

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	out := published(t, fs, "danger/index.html")
	require.Contains(t, out, "<pre")
	require.Contains(t, out, "rm")
	require.Contains(t, out, "/tmp/scratch")
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;")
}

func TestBuild_ManifestOrderedAndTimestampFree(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/old.md":     "---\ndate: 2023-01-01\n---\nold\n",
		"content/new.md":     "---\ndate: 2024-06-01\n---\nnew\n",
		"content/undated.md": "no date\n",
	}, nil)

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(published(t, fs, ManifestFilename)), &m))

	require.Equal(t, "lectern", m.Generator)
	require.Equal(t, "Test Course", m.Title)
	require.Len(t, m.Pages, 3)
	require.Equal(t, "new", m.Pages[0].Slug)
	require.Equal(t, "old", m.Pages[1].Slug)
	require.Equal(t, "undated", m.Pages[2].Slug)
	require.Empty(t, m.Pages[2].Date)
	require.Equal(t, "https://example.org/new/", m.Pages[0].Permalink)
}

func TestBuild_GeneratesHomeAndSectionIndexes(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/shell/basics.md": "---\ntitle: \"Basics\"\n---\nb\n",
		"content/shell/pipes.md":  "---\ntitle: \"Pipes\"\n---\np\n",
	}, nil)

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	home := published(t, fs, "index.html")
	require.Contains(t, home, "Basics")
	require.Contains(t, home, "Pipes")

	section := published(t, fs, "shell/index.html")
	require.Contains(t, section, `href="/shell/basics/"`)
}

func TestBuild_AuthorIndexShadowsGeneratedOne(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/_index.md":       "---\ntitle: \"My Home\"\n---\nhand written home\n",
		"content/shell/basics.md": "b\n",
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, res.Rendered)

	require.Contains(t, published(t, fs, "index.html"), "hand written home")
}

func TestBuild_AssetsCopiedByteForByte(t *testing.T) {
	asset := "\x89PNG\r\n\x1a\nnot really a png"
	s, fs := newTestSite(t, map[string]string{
		"content/shell/basics.md":  "b\n",
		"content/shell/wiring.png": asset,
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Assets)

	require.Equal(t, asset, published(t, fs, "shell/wiring.png"))
}

func TestBuild_DraftsAreExcluded(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/ready.md": "---\ntitle: \"Ready\"\n---\nr\n",
		"content/wip.md":   "---\ntitle: \"WIP\"\ndraft: true\n---\nw\n",
	}, nil)

	res, err := s.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Rendered)
	require.Zero(t, res.Failed)

	require.False(t, publishedExists(t, fs, "wip/index.html"))

	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(published(t, fs, ManifestFilename)), &m))
	require.Len(t, m.Pages, 1)
}

func TestBuild_MissingContentDirIsFatal(t *testing.T) {
	s, _ := newTestSite(t, nil, nil)

	_, err := s.Build(context.Background())
	require.Error(t, err)
}

func TestBuild_CanonifyURLs(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/shell/basics.md": "b\n",
	}, maps.Params{"canonifyURLs": true})

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	require.Contains(t, published(t, fs, "index.html"), `href="https://example.org/shell/basics/"`)
}

func TestBuild_Minify(t *testing.T) {
	s, fs := newTestSite(t, map[string]string{
		"content/a.md": "---\ntitle: \"A\"\n---\ntext\n",
	}, maps.Params{"minify": true})

	_, err := s.Build(context.Background())
	require.NoError(t, err)

	out := published(t, fs, "a/index.html")
	require.NotContains(t, out, "\n<head>")
	require.Contains(t, out, "text")
}

func TestBuild_Idempotent(t *testing.T) {
	files := map[string]string{
		"content/intro.md":        "---\ntitle: \"Intro\"\ndate: 2024-01-15\ntags: [\"a\"]\n---\n# Hi\n\n```sh\nls -la\n```\n",
		"content/shell/basics.md": "b\n",
		"content/shell/notes.txt": "asset\n",
	}

	snapshot := func() map[string]string {
		s, fs := newTestSite(t, files, nil)
		_, err := s.Build(context.Background())
		require.NoError(t, err)

		out := map[string]string{}
		root := filepath.Join(workingDir, "public")
		err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			b, err := afero.ReadFile(fs, path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			out[rel] = string(b)
			return nil
		})
		require.NoError(t, err)
		return out
	}

	first := snapshot()
	second := snapshot()

	require.NotEmpty(t, first)
	require.Equal(t, first, second)
}

func TestNew_InvalidConfigFailsEarly(t *testing.T) {
	cfg := config.NewFrom(maps.Params{"title": "no baseURL"})
	config.SetBaseDefaults(cfg)

	_, err := New(cfg, lecternfs.NewFrom(afero.NewMemMapFs(), cfg, workingDir))
	require.Error(t, err)

	var cerr *config.ConfigError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "baseurl", cerr.Key)
}
