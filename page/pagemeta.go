package page

import (
	"fmt"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/helpers"
	"github.com/getlectern/lectern/source"
)

// Meta is the typed view of a page's front matter. The raw params keep any
// keys not listed here.
type Meta struct {
	Title  string
	Author string
	Slug   string
	Type   string
	Tags   []string
	Draft  bool

	// Decoded separately; front matter dates come in several shapes.
	Date time.Time `mapstructure:"-"`
}

func decodeMeta(params maps.Params, fi *source.FileInfo) (Meta, error) {
	var m Meta

	if err := mapstructure.WeakDecode(map[string]any(params), &m); err != nil {
		return m, fmt.Errorf("decode front matter: %w", err)
	}

	if v, found := params["date"]; found {
		d, err := cast.ToTimeE(v)
		if err != nil {
			return m, fmt.Errorf("decode front matter: date: %w", err)
		}
		m.Date = d
	}

	if m.Title == "" {
		m.Title = helpers.TitleFromFilename(fi.BaseFileName())
	}

	// Explicit slugs get normalized; absent ones are derived
	// deterministically from the file name.
	in := m.Slug
	if in == "" {
		in = fi.BaseFileName()
	}
	normalized, err := slug.Normalize(in)
	if err != nil || normalized == "" {
		return m, fmt.Errorf("cannot derive a slug from %q", in)
	}
	m.Slug = normalized

	return m, nil
}
