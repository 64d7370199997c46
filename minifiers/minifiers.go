// Package minifiers configures the tdewolff minifiers used when publishing.
package minifiers

import (
	"io"
	"regexp"

	"github.com/tdewolff/minify/v2"

	"github.com/getlectern/lectern/config"
	"github.com/getlectern/lectern/media"
	"github.com/getlectern/lectern/output"
	"github.com/getlectern/lectern/transform"
)

// Client wraps a minifier.
type Client struct {
	m *minify.M
}

// New creates a new Client with the provided MIME types as the mapping
// foundation. The HTML minifier is also registered for any additional HTML
// output formats in the provided list.
func New(mediaTypes media.Types, outputFormats output.Formats, cfg config.Provider) (Client, error) {
	conf, err := decodeConfig(cfg)
	if err != nil {
		return Client{}, err
	}

	m := minify.New()

	addMinifier(m, mediaTypes, "css", getMinifier(conf, "css"))

	addMinifier(m, mediaTypes, "js", getMinifier(conf, "js"))
	m.AddRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), getMinifier(conf, "js"))

	addMinifier(m, mediaTypes, "json", getMinifier(conf, "json"))
	m.AddRegexp(regexp.MustCompile(`^(application|text)/(x-|(ld|manifest)\+)?json$`), getMinifier(conf, "json"))

	addMinifier(m, mediaTypes, "svg", getMinifier(conf, "svg"))
	addMinifier(m, mediaTypes, "xml", getMinifier(conf, "xml"))

	addMinifier(m, mediaTypes, "html", getMinifier(conf, "html"))
	for _, of := range outputFormats {
		if of.IsHTML {
			m.Add(of.MediaType.Type(), getMinifier(conf, "html"))
		}
	}

	return Client{m: m}, nil
}

func addMinifier(m *minify.M, mt media.Types, suffix string, min minify.Minifier) {
	for _, t := range mt.BySuffix(suffix) {
		m.Add(t.Type(), min)
	}
}

func getMinifier(c minifyConfig, s string) minify.Minifier {
	switch {
	case s == "css" && !c.DisableCSS:
		return &c.Tdewolff.CSS
	case s == "js" && !c.DisableJS:
		return &c.Tdewolff.JS
	case s == "json" && !c.DisableJSON:
		return &c.Tdewolff.JSON
	case s == "svg" && !c.DisableSVG:
		return &c.Tdewolff.SVG
	case s == "xml" && !c.DisableXML:
		return &c.Tdewolff.XML
	case s == "html" && !c.DisableHTML:
		return &c.Tdewolff.HTML
	default:
		return noopMinifier{}
	}
}

// noopMinifier implements minify.Minifier but doesn't minify content. This
// means we never miss a minifier for a registered MIME type, which minify
// reports as an error, while still allowing minification to be disabled for
// specific types.
type noopMinifier struct{}

// Minify copies r into w without transformation.
func (m noopMinifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	_, err := io.Copy(w, r)
	return err
}

// Transformer returns a func that can be used in the transformer publishing chain.
func (m Client) Transformer(mediatype media.Type) transform.Transformer {
	_, params, min := m.m.Match(mediatype.Type())
	if min == nil {
		// No minifier for this MIME type.
		return nil
	}

	return func(ft transform.FromTo) error {
		// The source io.Reader is already buffered and implements the
		// Bytes() method, which the minify library recognizes.
		return min.Minify(m.m, ft.To(), ft.From(), params)
	}
}
