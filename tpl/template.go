// Package tpl loads and executes the page templates.
//
// Project layouts (the layoutDir of the site) are overlaid on the embedded
// defaults, so a site only has to provide the templates it wants to change.
package tpl

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/overlayfs"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/helpers"
)

//go:embed embedded/*.html
var embeddedTemplates embed.FS

// TemplateProvider holds the parsed template set for one site.
type TemplateProvider struct {
	templates *template.Template
}

// New parses the embedded defaults plus any *.html files in the configured
// layoutDir of fs. Project files shadow embedded ones of the same name.
func New(fs afero.Fs, cfg config.Provider) (*TemplateProvider, error) {
	sub, err := iofs.Sub(embeddedTemplates, "embedded")
	if err != nil {
		return nil, err
	}

	var layoutFs afero.Fs = afero.FromIOFS{FS: sub}

	layoutDir := cfg.GetString("layoutDir")
	if layoutDir != "" {
		exists, err := helpers.DirExists(layoutDir, fs)
		if err != nil {
			return nil, err
		}
		if exists {
			layoutFs = overlayfs.New(overlayfs.Options{
				Fss: []afero.Fs{afero.NewBasePathFs(fs, layoutDir), layoutFs},
			})
		}
	}

	root := template.New("").Funcs(templateFuncs)

	err = afero.Walk(layoutFs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".html") {
			return nil
		}

		b, err := afero.ReadFile(layoutFs, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.ToSlash(path), ".html")
		if _, err := root.New(name).Parse(string(b)); err != nil {
			return fmt.Errorf("parse template %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TemplateProvider{templates: root}, nil
}

// Lookup returns the template with the given name, e.g. "page" or "list".
func (t *TemplateProvider) Lookup(name string) (*template.Template, bool) {
	templ := t.templates.Lookup(name)
	return templ, templ != nil
}

// Execute runs the named template with data into w.
func (t *TemplateProvider) Execute(w io.Writer, name string, data any) error {
	templ, found := t.Lookup(name)
	if !found {
		return fmt.Errorf("template %q not found", name)
	}
	return templ.Execute(w, data)
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"dateFormat": func(layout string, v any) (string, error) {
		t, err := cast.ToTimeE(v)
		if err != nil {
			return "", err
		}
		return t.Format(layout), nil
	},
	"now": time.Now,
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}
