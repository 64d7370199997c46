// Package output defines the formats a page can be rendered to.
package output

import (
	"strings"

	"github.com/getlectern/lectern/media"
)

// Format represents an output representation, usually to a file on disk.
type Format struct {
	// The Name is used as an identifier.
	Name string `json:"name"`

	MediaType media.Type `json:"-"`

	// The base output file name used for directory-style URLs,
	// defaults to "index".
	BaseName string `json:"baseName"`

	// IsHTML returns whether this format is in the HTML family.
	// This decides which publishing transformations apply.
	IsHTML bool `json:"isHTML"`

	// IsPlainText decides whether to use text/template or html/template
	// as template parser.
	IsPlainText bool `json:"isPlainText"`
}

// Formats is a slice of Format.
type Formats []Format

// GetByName gets a format by its identifier name.
func (formats Formats) GetByName(name string) (f Format, found bool) {
	for _, ff := range formats {
		if strings.EqualFold(name, ff.Name) {
			return ff, true
		}
	}
	return
}

// The built-in output formats.
var (
	HTMLFormat = Format{
		Name:      "HTML",
		MediaType: media.HTMLType,
		BaseName:  "index",
		IsHTML:    true,
	}

	JSONFormat = Format{
		Name:        "JSON",
		MediaType:   media.JSONType,
		BaseName:    "manifest",
		IsPlainText: true,
	}
)

// DefaultFormats lists the formats used by the site build.
var DefaultFormats = Formats{HTMLFormat, JSONFormat}
