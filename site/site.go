// Package site assembles a content tree into a published site.
package site

import (
	"log/slog"

	"github.com/getlectern/lectern/common/maps"
	"github.com/getlectern/lectern/common/paths"
	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/helpers"
	"github.com/getlectern/lectern/lecternfs"
	"github.com/getlectern/lectern/media"
	"github.com/getlectern/lectern/output"
	"github.com/getlectern/lectern/publisher"
	"github.com/getlectern/lectern/source"
	"github.com/getlectern/lectern/tpl"
)

// Site holds everything needed to build one site.
type Site struct {
	Cfg  config.Provider
	Fs   *lecternfs.Fs
	Info Info

	ContentSpec *helpers.ContentSpec
	Tmpl        *tpl.TemplateProvider

	sourceSpec *source.SourceSpec
	pub        publisher.Publisher

	log *slog.Logger
}

// Info is the site-global data exposed to templates.
type Info struct {
	Title   string
	BaseURL string
	Params  maps.Params
}

// New wires a Site from a validated config and filesystems.
// A config missing required keys fails here, before anything is read
// or written.
func New(cfg config.Provider, fs *lecternfs.Fs) (*Site, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	workingDir := cfg.GetString("workingDir")

	// The layout dir is resolved against the working dir once, so every
	// downstream component sees an absolute path.
	if ld := cfg.GetString("layoutDir"); ld != "" {
		cfg.Set("layoutDir", paths.AbsPathify(workingDir, ld))
	}

	contentSpec, err := helpers.NewContentSpec(cfg)
	if err != nil {
		return nil, err
	}

	tmpl, err := tpl.New(fs.Source, cfg)
	if err != nil {
		return nil, err
	}

	sourceSpec, err := source.NewSourceSpec(fs.Source, cfg)
	if err != nil {
		return nil, err
	}

	pub, err := publisher.NewDestinationPublisher(fs.PublishDir, output.DefaultFormats, media.DefaultTypes, cfg)
	if err != nil {
		return nil, err
	}

	return &Site{
		Cfg: cfg,
		Fs:  fs,
		Info: Info{
			Title:   cfg.GetString("title"),
			BaseURL: cfg.GetString("baseURL"),
			Params:  cfg.GetParams("params"),
		},
		ContentSpec: contentSpec,
		Tmpl:        tmpl,
		sourceSpec:  sourceSpec,
		pub:         pub,
		log:         slog.Default().With("component", "site"),
	}, nil
}

func (s *Site) contentDir() string {
	return paths.AbsPathify(s.Cfg.GetString("workingDir"), s.Cfg.GetString("contentDir"))
}
