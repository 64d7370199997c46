// Package goldmark converts Markdown to HTML using yuin/goldmark.
package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/getlectern/lectern/markup/converter"
	"github.com/getlectern/lectern/markup/highlight"
)

// Provider is the package entry point.
var Provider converter.ProviderProvider = provide{}

type provide struct{}

func (p provide) New(cfg converter.ProviderConfig) (converter.Provider, error) {
	md := newMarkdown(cfg)

	return converter.NewProvider("goldmark", func(ctx converter.DocumentContext) (converter.Converter, error) {
		return &goldmarkConverter{
			ctx: ctx,
			md:  md,
		}, nil
	}), nil
}

type goldmarkConverter struct {
	md  goldmark.Markdown
	ctx converter.DocumentContext
}

// Convert renders Markdown to HTML. This is a pure function of its input;
// the same source always yields the same bytes.
func (c *goldmarkConverter) Convert(ctx converter.RenderContext) (converter.Result, error) {
	buf := &bytes.Buffer{}
	if err := c.md.Convert(ctx.Src, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func newMarkdown(pcfg converter.ProviderConfig) goldmark.Markdown {
	// Note the absence of html.WithUnsafe: raw HTML in lesson content is
	// dropped, not passed through.
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeBlockRenderer(pcfg.Highlighter), 100),
			),
		),
	)
}

// codeBlockRenderer replaces goldmark's fenced code block output with
// chroma-highlighted, escaped literal text.
type codeBlockRenderer struct {
	h highlight.Highlighter
}

func newCodeBlockRenderer(h highlight.Highlighter) renderer.NodeRenderer {
	return &codeBlockRenderer{h: h}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, src []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(src))

	var code bytes.Buffer
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		code.Write(line.Value(src))
	}

	s, err := r.h.Highlight(code.String(), lang)
	if err != nil {
		return ast.WalkStop, err
	}

	if _, err := w.WriteString(s); err != nil {
		return ast.WalkStop, err
	}

	return ast.WalkSkipChildren, nil
}
