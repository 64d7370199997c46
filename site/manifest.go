package site

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/getlectern/lectern/output"
	"github.com/getlectern/lectern/page"
	"github.com/getlectern/lectern/publisher"
)

// ManifestFilename is written to the root of the publish dir.
const ManifestFilename = "manifest.json"

// Manifest records what a build produced, in navigation order.
// It carries no timestamps so that rebuilding unchanged sources yields
// byte-identical output.
type Manifest struct {
	Generator string          `json:"generator"`
	Title     string          `json:"title"`
	BaseURL   string          `json:"baseURL"`
	Pages     []ManifestEntry `json:"pages"`
}

// ManifestEntry is the metadata of one rendered page.
type ManifestEntry struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Section   string   `json:"section,omitempty"`
	Date      string   `json:"date,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Path      string   `json:"path"`
	Source    string   `json:"source"`
	Permalink string   `json:"permalink"`
}

func newManifest(info Info, pages page.Pages) Manifest {
	m := Manifest{
		Generator: "lectern",
		Title:     info.Title,
		BaseURL:   info.BaseURL,
		Pages:     make([]ManifestEntry, 0, len(pages)),
	}

	for _, p := range pages {
		e := ManifestEntry{
			Title:     p.Title(),
			Slug:      p.Slug(),
			Section:   p.Section(),
			Tags:      p.Tags(),
			Path:      p.TargetPath(),
			Source:    p.File().Path(),
			Permalink: p.Permalink(info.BaseURL),
		}
		if p.HasDate() {
			e.Date = p.Date().Format(time.RFC3339)
		}
		m.Pages = append(m.Pages, e)
	}

	return m
}

func (s *Site) publishManifest(pages page.Pages) error {
	m := newManifest(s.Info, pages)

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	return s.pub.Publish(publisher.Descriptor{
		Src:          bytes.NewReader(b),
		TargetPath:   ManifestFilename,
		OutputFormat: output.JSONFormat,
	})
}
