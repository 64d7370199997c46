package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/config"
)

func newTestContentSpec(t *testing.T, extra maps.Params) *ContentSpec {
	t.Helper()
	cfg := config.NewFrom(extra)
	config.SetBaseDefaults(cfg)
	spec, err := NewContentSpec(cfg)
	require.NoError(t, err)
	return spec
}

func TestResolveMarkup(t *testing.T) {
	spec := newTestContentSpec(t, nil)

	for _, ext := range []string{"md", "markdown", "mdown", "rmd", "MD"} {
		require.Equal(t, "markdown", spec.ResolveMarkup(ext), ext)
	}
	require.Equal(t, "", spec.ResolveMarkup("adoc"))
}

func TestPrepareContent_EmojiDisabledByDefault(t *testing.T) {
	spec := newTestContentSpec(t, nil)
	src := []byte("hello :smile:")
	require.Equal(t, src, spec.PrepareContent(src))
}

func TestPrepareContent_EmojiEnabled(t *testing.T) {
	spec := newTestContentSpec(t, maps.Params{"enableEmoji": true})
	out := spec.PrepareContent([]byte("hello :smile:"))
	require.NotContains(t, string(out), ":smile:")
}

func TestEmojify_UnknownCodeUntouched(t *testing.T) {
	out := Emojify([]byte("see :not_a_real_emoji_code:"))
	require.Equal(t, "see :not_a_real_emoji_code:", string(out))
}

func TestTitleFromFilename(t *testing.T) {
	require.Equal(t, "Shell basics", TitleFromFilename("shell-basics"))
	require.Equal(t, "Intro to python", TitleFromFilename("intro_to_python"))
	require.Equal(t, "Lesson", TitleFromFilename("lesson"))
}

func TestFirstUpper(t *testing.T) {
	require.Equal(t, "Hello", FirstUpper("hello"))
	require.Equal(t, "", FirstUpper(""))
}

func TestMD5String(t *testing.T) {
	h := MD5String("lessons/a.md")
	require.Len(t, h, 32)
	require.Equal(t, h, MD5String("lessons/a.md"))
	require.NotEqual(t, h, MD5String("lessons/b.md"))
}
