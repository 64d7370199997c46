// Package urlreplacers rewrites root-relative URLs against the site baseURL.
package urlreplacers

import (
	"bytes"

	"github.com/getlectern/lectern/transform"
)

var attrs = [][]byte{
	[]byte(`href="/`),
	[]byte(`src="/`),
	[]byte(`action="/`),
}

// NewAbsURLTransformer replaces relative URLs with absolute ones
// in HTML files, using the baseURL setting.
func NewAbsURLTransformer(baseURL string) transform.Transformer {
	prefix := []byte(baseURL)
	if !bytes.HasSuffix(prefix, []byte("/")) {
		prefix = append(prefix, '/')
	}

	return func(ft transform.FromTo) error {
		b := ft.From().Bytes()
		for _, attr := range attrs {
			// `href="/x` -> `href="<baseURL>/x`
			repl := append(attr[:len(attr)-1:len(attr)-1], prefix...)
			b = bytes.ReplaceAll(b, attr, repl)
		}
		_, err := ft.To().Write(b)
		return err
	}
}
