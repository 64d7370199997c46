// Package page holds the model for a single rendered page.
package page

import (
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/source"
)

// Page is one lesson document on its way from source file to HTML page.
type Page struct {
	file *source.FileInfo

	meta   Meta
	params maps.Params

	rawContent []byte
	content    template.HTML
}

// New creates a Page from a source file, its decoded front matter and the
// markdown body. The slug is taken from the front matter or derived from
// the file name.
func New(fi *source.FileInfo, params maps.Params, body []byte) (*Page, error) {
	meta, err := decodeMeta(params, fi)
	if err != nil {
		return nil, err
	}

	return &Page{
		file:       fi,
		meta:       meta,
		params:     params,
		rawContent: body,
	}, nil
}

// File returns the underlying source file.
func (p *Page) File() *source.FileInfo { return p.file }

// Title returns the page title, derived from the file name when the front
// matter has none.
func (p *Page) Title() string { return p.meta.Title }

// Author returns the author from front matter, may be empty.
func (p *Page) Author() string { return p.meta.Author }

// Date returns the page date. The zero time when front matter has no
// parseable date.
func (p *Page) Date() time.Time { return p.meta.Date }

// HasDate is a template convenience.
func (p *Page) HasDate() bool { return !p.meta.Date.IsZero() }

// Tags returns the tags from front matter.
func (p *Page) Tags() []string { return p.meta.Tags }

// Slug returns the URL-safe page identifier.
func (p *Page) Slug() string { return p.meta.Slug }

// Type returns the content type from front matter, may be empty.
func (p *Page) Type() string { return p.meta.Type }

// Draft reports whether the page is excluded from publishing.
func (p *Page) Draft() bool { return p.meta.Draft }

// Section is the first directory below the content root.
func (p *Page) Section() string { return p.file.Section() }

// Params returns the raw front matter, unknown keys included.
func (p *Page) Params() maps.Params { return p.params }

// RawContent returns the markdown body with front matter removed.
func (p *Page) RawContent() []byte { return p.rawContent }

// Content returns the rendered HTML body.
func (p *Page) Content() template.HTML { return p.content }

// SetContent is called once by the site build after markdown conversion.
func (p *Page) SetContent(c template.HTML) { p.content = c }

// IsIndex reports whether the source file names a directory index
// (index.md or _index.md).
func (p *Page) IsIndex() bool {
	base := p.file.BaseFileName()
	return base == "index" || base == "_index"
}

// TargetPath is the output path of the page relative to the publish dir,
// preserving the relative directory of the source file. Pages get
// directory-style URLs: <dir>/<slug>/index.html.
func (p *Page) TargetPath() string {
	if p.IsIndex() {
		return path.Join(p.file.Dir(), "index.html")
	}
	return path.Join(p.file.Dir(), p.meta.Slug, "index.html")
}

// RelPermalink is the root-relative URL of the page.
func (p *Page) RelPermalink() string {
	dir := path.Dir(p.TargetPath())
	if dir == "." || dir == "" {
		return "/"
	}
	return "/" + dir + "/"
}

// Permalink joins the configured baseURL and the page's relative URL.
func (p *Page) Permalink(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + p.RelPermalink()
}
