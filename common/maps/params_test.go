package maps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetNested(t *testing.T) {
	p := Params{
		"title": "T",
		"markup": Params{
			"highlight": Params{"style": "dracula"},
		},
	}

	require.Equal(t, "T", p.Get("title"))
	require.Equal(t, "dracula", p.Get("markup", "highlight", "style"))
	require.Nil(t, p.Get("markup", "missing", "style"))
	require.Nil(t, p.Get("nope"))
}

func TestSet_MergesRecursively(t *testing.T) {
	p := Params{
		"a": "keep",
		"nested": Params{
			"x": 1,
		},
	}
	p.Set(Params{
		"b": "new",
		"nested": Params{
			"y": 2,
		},
	})

	require.Equal(t, "keep", p["a"])
	require.Equal(t, "new", p["b"])
	require.Equal(t, 1, p.Get("nested", "x"))
	require.Equal(t, 2, p.Get("nested", "y"))
}

func TestPrepareParams(t *testing.T) {
	p := Params{
		"Title": "T",
		"Markup": map[string]any{
			"Highlight": map[string]string{"Style": "dracula"},
		},
	}
	PrepareParams(p)

	require.Equal(t, "T", p["title"])
	require.Equal(t, "dracula", p.Get("markup", "highlight", "style"))
	require.IsType(t, Params{}, p["markup"])
}
