package site

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	bp "github.com/getlectern/lectern/bufferpool"
	"github.com/getlectern/lectern/frontmatter"
	"github.com/getlectern/lectern/helpers"
	"github.com/getlectern/lectern/markup/converter"
	"github.com/getlectern/lectern/output"
	"github.com/getlectern/lectern/page"
	"github.com/getlectern/lectern/publisher"
	"github.com/getlectern/lectern/source"
)

// Documents are independent, so renders may run concurrently. The output
// tree is the only shared resource and collisions are detected up front.
const numWorkers = 4

// BuildResult summarizes one build.
type BuildResult struct {
	Rendered int
	Assets   int

	// Failed documents were skipped, their errors collected in Errs.
	// The rest of the batch still built.
	Failed int
	Errs   []error
}

// Build runs the whole pipeline: capture, parse, preflight, render, copy,
// manifest. A returned error is structural (collision, unreadable content
// root) and fatal; per-document failures land in BuildResult instead.
func (s *Site) Build(ctx context.Context) (BuildResult, error) {
	var res BuildResult

	fsys := s.sourceSpec.NewFilesystem(s.contentDir())

	files, err := fsys.Files()
	if err != nil {
		return res, err
	}
	assets, err := fsys.Assets()
	if err != nil {
		return res, err
	}

	// Read and parse every document. Malformed front matter or an
	// unreadable file only loses that document.
	var pages page.Pages
	for _, fi := range files {
		p, err := s.readAndParse(fi)
		if err != nil {
			s.log.Warn("skipping document", "file", fi.Path(), "error", err)
			res.Failed++
			res.Errs = append(res.Errs, err)
			continue
		}
		if p.Draft() {
			continue
		}
		pages = append(pages, p)
	}

	pages.SortByDefault()

	// Preflight all target paths before any write. A collision is a
	// structural defect in the site and aborts the build with nothing
	// (partially) overwritten.
	listTargets, err := s.preflightTargets(pages, assets)
	if err != nil {
		return res, err
	}

	// Render pages across workers. Render failures are isolated like
	// parse failures.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	var mu sync.Mutex
	for _, p := range pages {
		p := p
		g.Go(func() error {
			if err := s.renderAndWritePage(p); err != nil {
				s.log.Warn("render failed", "file", p.File().Path(), "error", err)
				mu.Lock()
				res.Failed++
				res.Errs = append(res.Errs, fmt.Errorf("render %s: %w", p.File().Path(), err))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			res.Rendered++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Navigation pages for the home page and each section, unless the
	// author supplied their own index document there.
	for _, lt := range listTargets {
		if err := s.renderAndWriteList(lt, pages); err != nil {
			return res, fmt.Errorf("render index %s: %w", lt.targetPath, err)
		}
	}

	// Static assets are copied byte-for-byte. A failed copy loses only
	// that asset.
	for _, a := range assets {
		if err := s.copyAsset(a); err != nil {
			s.log.Warn("asset copy failed", "file", a.Path(), "error", err)
			res.Failed++
			res.Errs = append(res.Errs, err)
			continue
		}
		res.Assets++
	}

	if err := s.publishManifest(pages); err != nil {
		return res, err
	}

	return res, nil
}

// listTarget is a navigation page the build generates itself.
type listTarget struct {
	title      string
	section    string // empty for the home page
	targetPath string
}

// preflightTargets claims an output path for every page, generated index,
// the manifest and every asset, and fails on the first duplicate.
func (s *Site) preflightTargets(pages page.Pages, assets []*source.FileInfo) ([]listTarget, error) {
	claimed := map[string]string{
		ManifestFilename: "(build manifest)",
	}

	claim := func(target, src string) error {
		if prev, found := claimed[target]; found {
			return &CollisionError{Path: target, Sources: [2]string{prev, src}}
		}
		claimed[target] = src
		return nil
	}

	for _, p := range pages {
		if err := claim(p.TargetPath(), p.File().Path()); err != nil {
			return nil, err
		}
	}

	var lists []listTarget
	if _, taken := claimed["index.html"]; !taken {
		lists = append(lists, listTarget{title: s.Info.Title, targetPath: "index.html"})
		claimed["index.html"] = "(generated home page)"
	}
	for _, section := range sections(pages) {
		target := path.Join(section, "index.html")
		if _, taken := claimed[target]; taken {
			continue
		}
		lists = append(lists, listTarget{
			title:      helpers.TitleFromFilename(section),
			section:    section,
			targetPath: target,
		})
		claimed[target] = "(generated section index)"
	}

	for _, a := range assets {
		if err := claim(a.Path(), a.Path()); err != nil {
			return nil, err
		}
	}

	return lists, nil
}

func sections(pages page.Pages) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range pages {
		sec := p.Section()
		if sec == "" || seen[sec] {
			continue
		}
		seen[sec] = true
		out = append(out, sec)
	}
	return out
}

func (s *Site) readAndParse(fi *source.FileInfo) (*page.Page, error) {
	data, err := afero.ReadFile(s.Fs.Source, fi.Filename())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fi.Path(), err)
	}

	content, err := frontmatter.Parse(data)
	if err != nil {
		return nil, &frontmatter.ParseError{Filename: fi.Path(), Err: err}
	}

	return page.New(fi, content.Params, content.Body)
}

// pageData is what the page template sees.
type pageData struct {
	Site Info
	Page *page.Page
}

// listData is what the list template sees.
type listData struct {
	Site  Info
	Title string
	Pages page.Pages
}

func (s *Site) renderAndWritePage(p *page.Page) error {
	markupName := s.ContentSpec.ResolveMarkup(p.File().Ext())
	cp := s.ContentSpec.Converters.Get(markupName)
	if cp == nil {
		return fmt.Errorf("no converter for markup %q", p.File().Ext())
	}

	conv, err := cp.New(converter.DocumentContext{
		DocumentID:   p.File().UniqueID(),
		DocumentName: p.File().Path(),
		Filename:     p.File().Filename(),
	})
	if err != nil {
		return err
	}

	src := s.ContentSpec.PrepareContent(p.RawContent())
	r, err := conv.Convert(converter.RenderContext{Src: src})
	if err != nil {
		return err
	}
	p.SetContent(helpers.BytesToHTML(r.Bytes()))

	layout := "page"
	if t := p.Type(); t != "" {
		if _, found := s.Tmpl.Lookup(t); found {
			layout = t
		}
	}

	return s.renderAndWrite(layout, p.TargetPath(), pageData{Site: s.Info, Page: p})
}

func (s *Site) renderAndWriteList(lt listTarget, all page.Pages) error {
	pages := all
	if lt.section != "" {
		pages = all.BySection()[lt.section]
	}

	return s.renderAndWrite("list", lt.targetPath, listData{
		Site:  s.Info,
		Title: lt.title,
		Pages: pages,
	})
}

func (s *Site) renderAndWrite(layout, targetPath string, data any) error {
	b := bp.GetBuffer()
	defer bp.PutBuffer(b)

	if err := s.Tmpl.Execute(b, layout, data); err != nil {
		return err
	}

	var absURLPath string
	if s.Cfg.GetBool("canonifyURLs") {
		absURLPath = s.Info.BaseURL
	}

	return s.pub.Publish(publisher.Descriptor{
		Src:          b,
		TargetPath:   targetPath,
		OutputFormat: output.HTMLFormat,
		AbsURLPath:   absURLPath,
		Minify:       s.Cfg.GetBool("minify"),
	})
}

// copyAsset copies a non-content file to the same relative location in the
// publish dir, without transformation.
func (s *Site) copyAsset(a *source.FileInfo) error {
	in, err := s.Fs.Source.Open(a.Filename())
	if err != nil {
		return fmt.Errorf("open asset %s: %w", a.Path(), err)
	}
	defer in.Close()

	out, err := helpers.OpenFileForWriting(s.Fs.PublishDir, a.Path())
	if err != nil {
		return fmt.Errorf("create asset %s: %w", a.Path(), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy asset %s: %w", a.Path(), err)
	}
	return nil
}
