// Package source captures the files of a content tree.
package source

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/getlectern/lectern/config"
)

// contentExtensions are the file extensions treated as renderable lesson
// documents. Everything else found in the content tree is a static asset.
var contentExtensions = map[string]bool{
	"md":       true,
	"markdown": true,
	"mdown":    true,
	"rmd":      true,
}

// SourceSpec abstracts language-independent file creations and file system operations.
type SourceSpec struct {
	SourceFs afero.Fs

	shouldInclude func(filename string) bool
}

// NewSourceSpec initializes SourceSpec using the ignoreFiles patterns
// from the given config.
func NewSourceSpec(fs afero.Fs, cfg config.Provider) (*SourceSpec, error) {
	ignores := cfg.GetStringSlice("ignoreFiles")

	var globs []glob.Glob
	for _, pattern := range ignores {
		g, err := glob.Compile(strings.ToLower(pattern), '/')
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}

	shouldInclude := func(filename string) bool {
		if strings.HasPrefix(filepath.Base(filename), ".") {
			return false
		}
		lower := strings.ToLower(filepath.ToSlash(filename))
		for _, g := range globs {
			if g.Match(lower) {
				return false
			}
		}
		return true
	}

	return &SourceSpec{SourceFs: fs, shouldInclude: shouldInclude}, nil
}

// IgnoreFile returns whether a given file should be ignored.
func (s *SourceSpec) IgnoreFile(filename string) bool {
	return !s.shouldInclude(filename)
}

// IsContent reports whether ext (without the leading ".") identifies a
// renderable document.
func IsContent(ext string) bool {
	return contentExtensions[strings.ToLower(ext)]
}
