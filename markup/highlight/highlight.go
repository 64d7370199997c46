// Package highlight renders code fences as escaped, syntax-highlighted
// literal text. Fenced code is never evaluated; this is the sandbox boundary
// that keeps shell and Python snippets in lesson content inert.
package highlight

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter highlights code in the given language.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// New creates a Highlighter with the given configuration.
func New(cfg Config) Highlighter {
	return chromaHighlighter{cfg: cfg}
}

type chromaHighlighter struct {
	cfg Config
}

func (h chromaHighlighter) Highlight(code, lang string) (string, error) {
	var b strings.Builder
	if err := highlight(&b, code, lang, h.cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

func highlight(w io.Writer, code, lang string, cfg Config) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	} else if cfg.GuessSyntax {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		// Unknown language: plain text, still escaped.
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(cfg.Style)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}

	formatter := html.New(
		html.WithClasses(!cfg.NoClasses),
		html.TabWidth(cfg.TabWidth),
	)

	return formatter.Format(w, style, it)
}
